package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// IsDuplicateKeyError checks if err is a unique constraint violation. When
// column is non-empty it must appear in the PostgreSQL constraint name or
// the SQLite error text.
func IsDuplicateKeyError(err error, column string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505" && containsFold(pgErr.ConstraintName, column)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return column == "" || containsFold(err.Error(), column)
	}

	// sqlite: "UNIQUE constraint failed: users.email"
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && containsFold(msg, column)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
