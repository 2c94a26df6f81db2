package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nikolayk812/ordercore/internal/domain"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// mapConstraintError turns integrity violations into domain.ErrConflict.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgForeignKeyViolation, pgUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.Message)
	}

	return err
}
