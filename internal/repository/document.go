package repository

import (
	"context"
	"errors"

	"pdfmanager/internal/model"
)

// ErrDuplicate is returned by Create when pdf_path or thumb_path is already
// taken by another row.
var ErrDuplicate = errors.New("duplicate document path")

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, only persistence.
type DocumentRepository interface {
	// Create inserts a new document row. ID and CreatedAt are assigned by the
	// database and returned in the stored document. Unique violations are
	// reported as ErrDuplicate.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// List returns every document ordered by ascending ID.
	List(ctx context.Context) ([]model.Document, error)

	// UpdateLabel changes only the label column of one document.
	UpdateLabel(ctx context.Context, id int64, label string) error

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id int64) error
}
