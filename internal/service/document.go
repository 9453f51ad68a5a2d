package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pdfmanager/internal/model"
	"pdfmanager/internal/repository"
	"pdfmanager/internal/storage"
	"pdfmanager/internal/thumbnail"
)

// PDFContentType is the only MIME type accepted for uploads.
const PDFContentType = "application/pdf"

var (
	ErrNotFound        = errors.New("document not found")
	ErrMissingFile     = errors.New("file is required")
	ErrUnsupportedType = errors.New("file must be a pdf")
	ErrMissingLabel    = errors.New("label is required")
	ErrDuplicate       = errors.New("document with the same file already exists")
)

var whitespace = regexp.MustCompile(`\s+`)

// SanitizeFilename keeps only the base name of a client-supplied file name
// and collapses every run of whitespace into one underscore.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	return whitespace.ReplaceAllString(name, "_")
}

// ThumbnailQueue schedules thumbnail generation without waiting for it.
type ThumbnailQueue interface {
	Enqueue(pdfPath, thumbPath string) bool
}

// UploadInput is one multipart upload. File is nil when the request carried
// no file part.
type UploadInput struct {
	File        io.Reader
	Filename    string
	ContentType string
	Size        int64
	Label       string
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// List returns every document ordered by ascending id.
	List(ctx context.Context) ([]model.Document, error)

	// Upload writes the PDF, inserts the row and schedules its thumbnail.
	// The thumbnail is not awaited, so the row may reference a file that
	// does not exist yet.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// Rename replaces the label of an existing document.
	Rename(ctx context.Context, req RenameRequest) error

	// Delete removes the row, then best-effort removes the PDF and thumbnail.
	Delete(ctx context.Context, id int64) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store  storage.Storage
	repo   repository.DocumentRepository
	thumbs ThumbnailQueue
	log    logrus.FieldLogger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, thumbs ThumbnailQueue, log logrus.FieldLogger) DocumentService {
	return &documentService{
		store:  store,
		repo:   repo,
		thumbs: thumbs,
		log:    log.WithField("component", "document_service"),
	}
}

func (s *documentService) List(ctx context.Context) ([]model.Document, error) {
	return s.repo.List(ctx)
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	if err := s.store.EnsureRoot(ctx); err != nil {
		return nil, fmt.Errorf("prepare upload directory: %w", err)
	}
	if in.File == nil {
		return nil, ErrMissingFile
	}
	if in.ContentType != PDFContentType {
		return nil, ErrUnsupportedType
	}

	name := SanitizeFilename(in.Filename)
	info, err := s.store.Put(ctx, name, in.File, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		// the existing file belongs to another document; leave it alone
		if errors.Is(err, storage.ErrExists) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, name)
		}
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	// The label is only known to be usable once the file has been consumed.
	if in.Label == "" {
		s.removeFile(ctx, info.Key, "upload_cleanup")
		return nil, ErrMissingLabel
	}
	rec := uploadRecord{
		Label:     in.Label,
		PDFPath:   info.Key,
		ThumbPath: thumbnail.PathFor(info.Key),
	}
	if err := rec.Validate(); err != nil {
		s.removeFile(ctx, info.Key, "upload_cleanup")
		return nil, err
	}

	doc, err := s.repo.Create(ctx, &model.Document{
		Label:     rec.Label,
		PDFPath:   rec.PDFPath,
		ThumbPath: rec.ThumbPath,
	})
	if err != nil {
		// Put never overwrites, so the file is ours to remove
		s.removeFile(ctx, rec.PDFPath, "upload_cleanup")
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, rec.PDFPath)
		}
		return nil, fmt.Errorf("save document: %w", err)
	}

	// enqueued only once the row exists, so a rejected insert leaves no thumbnail
	if !s.thumbs.Enqueue(rec.PDFPath, rec.ThumbPath) {
		s.log.WithField("pdf_path", rec.PDFPath).Warn("thumbnail_not_scheduled")
	}

	s.log.WithFields(logrus.Fields{
		"document_id": doc.ID,
		"pdf_path":    doc.PDFPath,
	}).Info("document_uploaded")
	return doc, nil
}

func (s *documentService) Rename(ctx context.Context, req RenameRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := s.find(ctx, req.ID); err != nil {
		return err
	}
	if err := s.repo.UpdateLabel(ctx, req.ID, *req.Label); err != nil {
		return fmt.Errorf("update label: %w", err)
	}
	return nil
}

// Delete removes the row first and the files second. The two steps are not
// atomic: a crash in between leaves orphaned files without a row.
func (s *documentService) Delete(ctx context.Context, id int64) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	doc, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	var g errgroup.Group
	for _, path := range []string{doc.PDFPath, doc.ThumbPath} {
		g.Go(func() error {
			return s.removeFile(ctx, path, "delete_document")
		})
	}
	_ = g.Wait() // failures are logged per file and never surfaced

	s.log.WithField("document_id", id).Info("document_deleted")
	return nil
}

func (s *documentService) find(ctx context.Context, id int64) (*model.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return doc, nil
}

// removeFile deletes one stored file and logs, rather than returns, failures
// to the caller's response path.
func (s *documentService) removeFile(ctx context.Context, path, reason string) error {
	if err := s.store.Delete(ctx, path); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"path":   path,
			"reason": reason,
		}).Error("file_remove_failed")
		return err
	}
	return nil
}
