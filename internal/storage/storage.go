package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"pdfmanager/internal/config"
)

// Package storage holds the file store for uploaded PDFs and generated
// thumbnails. Keys are flat file names; drivers decide where they live.

const (
	DriverLocal = "local"
	DriverMinIO = "minio"
)

var (
	// ErrOutsideRoot is returned when a key resolves outside the storage root.
	ErrOutsideRoot = errors.New("storage: path escapes storage root")
	// ErrExists is returned by Put when the key is taken and Overwrite is off.
	ErrExists = errors.New("storage: object already exists")
)

// PutObjectOptions define optional parameters for writing objects.
// Size should be the exact number of bytes if known, or -1.
// Without Overwrite an existing object is left untouched and Put returns
// ErrExists.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
	Overwrite   bool
}

// ObjectInfo contains basic information about a stored object.
// Key is the location to persist and pass back to Get/Delete: an absolute
// path for the local driver, the object key for MinIO.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the file store used by the document service and thumbnail worker.
// Implementations must be safe for concurrent use.
type Storage interface {
	// EnsureRoot creates the upload directory or bucket if it does not exist.
	EnsureRoot(ctx context.Context) error
	// Put writes the reader's content under key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get opens an object for streaming reads.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object. Missing objects are reported as errors.
	Delete(ctx context.Context, key string) error
}

// New builds the storage driver selected by cfg.Storage.Driver.
func New(cfg *config.AppConfig) (Storage, error) {
	switch cfg.Storage.Driver {
	case "", DriverLocal:
		return NewLocal(cfg.Storage.UploadDir)
	case DriverMinIO:
		return NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
