package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sentinelQuery = `SELECT to_regclass\('public.tb_documents'\) IS NOT NULL`

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()

	t.Run("schema exists - skip", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		log, hook := logtest.NewNullLogger()

		mock.ExpectQuery(sentinelQuery).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err = EnsureMigrated(ctx, db, log, "localhost")

		assert.NoError(t, err)
		assert.Equal(t, "db_migration_skip", hook.LastEntry().Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("schema missing - runs every step", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		log, hook := logtest.NewNullLogger()

		mock.ExpectQuery(sentinelQuery).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS tb_documents").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_tb_documents_created_at").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = EnsureMigrated(ctx, db, log, "localhost")

		assert.NoError(t, err)
		assert.Equal(t, "db_migration_success", hook.LastEntry().Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sentinel check fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		log, hook := logtest.NewNullLogger()

		mock.ExpectQuery(sentinelQuery).WillReturnError(errors.New("conn refused"))

		err = EnsureMigrated(ctx, db, log, "localhost")

		assert.ErrorContains(t, err, "failed to check sentinel table: conn refused")
		assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("step fails - stops early", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		log, hook := logtest.NewNullLogger()

		mock.ExpectQuery(sentinelQuery).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS tb_documents").
			WillReturnError(errors.New("permission denied"))

		err = EnsureMigrated(ctx, db, log, "localhost")

		assert.ErrorContains(t, err, "migration step create_table_tb_documents failed")
		assert.Equal(t, "create_table_tb_documents", hook.LastEntry().Data["migration_step"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
