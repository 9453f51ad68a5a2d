package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsDuplicateError reports whether err is a unique constraint violation.
func IsDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}
