package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeForeignKeyViolation = "23503"

// IsForeignKeyViolation は PostgreSQL の foreign_key_violation(23503) かどうかを判定します
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeForeignKeyViolation
	}
	return false
}
