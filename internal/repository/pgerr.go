package repository

import (
	"errors"
	"fmt"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the inventory constraints can raise.
const (
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
)

// translateConstraint maps a unique/exclusion violation onto the domain
// conflict for the calling operation, so callers never see a raw
// storage error. The database constraint is the authoritative guard; the
// in-transaction pre-checks are only an optimization.
func translateConstraint(err error, conflict error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgExclusionViolation:
			return conflict
		case pgSerializationFailure:
			return fmt.Errorf("%w: %s", domain.ErrStorageConflict, pgErr.Message)
		}
	}
	return err
}

func translatePG(err error) error {
	return translateConstraint(err, domain.ErrStorageConflict)
}

// notFound converts pgx.ErrNoRows into the domain NotFound kind.
func notFound(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return err
}
