package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"pdfmanager/internal/model"
	"pdfmanager/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "label", "pdf_path", "thumb_path", "created_at"}

func newRepo(t *testing.T) (*DocumentPostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDocumentPostgres(db), mock
}

func TestDocumentPostgres_Create(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	doc := &model.Document{
		Label:     "Q1 Report",
		PDFPath:   "/srv/documents/report.pdf",
		ThumbPath: "/srv/documents/report_thumb.jpg",
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO tb_documents").
			WithArgs(doc.Label, doc.PDFPath, doc.ThumbPath).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(7), doc.Label, doc.PDFPath, doc.ThumbPath, now))

		result, err := repo.Create(ctx, doc)

		assert.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, int64(7), result.ID)
		assert.Equal(t, now, result.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO tb_documents").
			WithArgs(doc.Label, doc.PDFPath, doc.ThumbPath).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		result, err := repo.Create(ctx, doc)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.True(t, IsDuplicateError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM tb_documents WHERE id = ?").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(3), "label", "/d/a.pdf", "/d/a_thumb.jpg", time.Now()))

		doc, err := repo.FindByID(ctx, 3)

		assert.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, int64(3), doc.ID)
		assert.Equal(t, "/d/a_thumb.jpg", doc.ThumbPath)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM tb_documents WHERE id = ?").
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, 99)

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, doc)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_List(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()

	t.Run("ordered by id", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).
			AddRow(int64(1), "a", "/d/a.pdf", "/d/a_thumb.jpg", time.Now()).
			AddRow(int64(2), "b", "/d/b.pdf", "/d/b_thumb.jpg", time.Now())
		mock.ExpectQuery("SELECT (.+) FROM tb_documents ORDER BY id ASC").WillReturnRows(rows)

		items, err := repo.List(ctx)

		assert.NoError(t, err)
		require.Len(t, items, 2)
		assert.Less(t, items[0].ID, items[1].ID)
	})

	t.Run("empty table returns empty slice", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM tb_documents ORDER BY id ASC").
			WillReturnRows(sqlmock.NewRows(columns))

		items, err := repo.List(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM tb_documents").WillReturnError(errors.New("db down"))

		items, err := repo.List(ctx)

		assert.EqualError(t, err, "db down")
		assert.Nil(t, items)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_UpdateLabel(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("UPDATE tb_documents SET label = (.+) WHERE id = (.+)").
		WithArgs("New label", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateLabel(context.Background(), 5, "New label")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Delete(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM tb_documents WHERE id = ?").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 5)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, IsDuplicateError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsDuplicateError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsDuplicateError(errors.New("plain")))
}
