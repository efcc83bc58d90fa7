package commands

import (
	"context"
	"errors"

	"pharmacy/internal/pkg/errs"
)

// maxConflictAttempts bounds how many times a handler re-runs its transaction
// after losing an optimistic concurrency race. Validation and business errors
// are never retried; only conflicts are, since a fresh attempt re-reads the
// current state and may well succeed.
const maxConflictAttempts = 3

// withConflictRetry runs op until it succeeds, fails with a non-conflict
// error, or the attempts are exhausted. The last conflict is returned when
// every attempt loses the race.
func withConflictRetry(ctx context.Context, op func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxConflictAttempts; attempt++ {
		err = op(ctx)
		if err == nil || !errors.Is(err, errs.ErrConflict) {
			return err
		}
	}
	return err
}
