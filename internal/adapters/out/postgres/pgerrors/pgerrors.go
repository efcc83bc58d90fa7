// Package pgerrors translates low-level Postgres failures into the
// application's error taxonomy so that command handlers can react to
// concurrency conflicts without knowing about SQLSTATE codes.
package pgerrors

import (
	"errors"

	"pharmacy/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes that indicate a retryable write conflict rather than a
// permanent failure.
const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	uniqueViolation      = "23505"
)

// Wrap maps Postgres driver errors onto errs.ConflictError where the failure
// is a concurrency conflict (serialization failure, deadlock, or a unique
// constraint race). Other errors, and nil, pass through unchanged.
func Wrap(resource string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case serializationFailure, deadlockDetected, uniqueViolation:
		return errs.NewConflictErrorWithCause(resource, err)
	default:
		return err
	}
}
