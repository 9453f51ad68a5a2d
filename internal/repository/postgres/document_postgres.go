package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"pdfmanager/internal/model"
	"pdfmanager/internal/repository"
)

const documentColumns = `id, label, pdf_path, thumb_path, created_at`

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Label,
		&d.PDFPath,
		&d.ThumbPath,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO tb_documents (label, pdf_path, thumb_path)
		VALUES ($1, $2, $3)
		RETURNING ` + documentColumns
	stored, err := scanDocument(r.db.QueryRowContext(ctx, q, doc.Label, doc.PDFPath, doc.ThumbPath))
	if err != nil {
		if IsDuplicateError(err) {
			return nil, fmt.Errorf("%w: %w", repository.ErrDuplicate, err)
		}
		return nil, err
	}
	return stored, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM tb_documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns all documents ordered by ID.
func (r *DocumentPostgres) List(ctx context.Context) ([]model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM tb_documents ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateLabel sets the label of one document. A missing row is not an error.
func (r *DocumentPostgres) UpdateLabel(ctx context.Context, id int64, label string) error {
	const q = `UPDATE tb_documents SET label = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, q, label, id)
	return err
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM tb_documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
