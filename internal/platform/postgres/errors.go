package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"
)

// MapError maps a database error onto the store error taxonomy. It wraps
// the original error to preserve context for debugging. Every database
// operation in this package routes its errors through here so callers
// can rely on errors.Is against the store sentinels.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	// Deadline and cancellation surface as a distinct timeout kind so the
	// transport layer can tell slow storage from absent storage.
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", store.ErrTimeout, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	// Connection-level failures mean the store is unreachable.
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", store.ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: unique violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case checkViolationCode:
			return fmt.Errorf("%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		}
	}

	// Return the original error for errors that don't have specific mappings
	return err
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign
// key constraint violation, optionally against a specific constraint.
// The review ledger uses this to turn an FK failure on word_id into the
// precise ErrWordNotFound instead of the generic invalid-entity error.
func IsForeignKeyViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != foreignKeyViolationCode {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
