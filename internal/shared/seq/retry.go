package seq

import (
	"context"
	"errors"
	"fmt"
)

// MaxAttempts bounds the conflict-retry loop. The counter strategy rarely
// collides, so the bound is tight and there is no backoff between attempts.
const MaxAttempts = 3

// ErrIdentifierConflict marks an insert rejected because the candidate
// identifier is already taken. Persistence adapters wrap their duplicate-key
// signal with this error, but only for the identifier column; a duplicate on
// any other column must surface as a plain insert failure.
var ErrIdentifierConflict = errors.New("identifier already taken")

// ErrExhausted is returned when the retry bound is reached without a
// successful insert. Callers surface it as a distinct, user-actionable
// failure rather than a generic server error.
var ErrExhausted = errors.New("could not allocate a unique identifier")

// InsertFunc persists a record carrying the candidate identifier. It returns
// an error wrapping ErrIdentifierConflict when the identifier is taken, nil
// on success, and any other error for failures that retrying cannot fix.
type InsertFunc func(ctx context.Context, identifier string) error

// AllocateAndInsert runs the conflict-retry loop for a single record:
// request a candidate from the sequencer, attempt the insert, and on an
// identifier conflict re-allocate a fresh candidate, up to MaxAttempts
// attempts total. Failures of the sequencer itself count as attempts and are
// retried the same way. Any other insert failure is returned immediately.
func AllocateAndInsert(ctx context.Context, sequencer Sequencer, insert InsertFunc) (string, error) {
	var lastErr error

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		identifier, err := sequencer.Next(ctx)
		if err != nil {
			lastErr = err
			continue
		}

		err = insert(ctx, identifier)
		if err == nil {
			return identifier, nil
		}

		if !errors.Is(err, ErrIdentifierConflict) {
			return "", err
		}

		lastErr = err
	}

	return "", fmt.Errorf("%w after %d attempts: %w", ErrExhausted, MaxAttempts, lastErr)
}

// AllocateBatch pre-allocates count identifiers from the sequencer, one per
// record of an import batch. The caller consumes them in order and must
// consume one per record whether or not the record itself succeeds, so that
// failed rows never cause a number to be reused within the run.
func AllocateBatch(ctx context.Context, sequencer Sequencer, count int) ([]string, error) {
	if count < 0 {
		return nil, fmt.Errorf("seq: batch size must not be negative, got %d", count)
	}

	identifiers := make([]string, 0, count)
	for i := 0; i < count; i++ {
		identifier, err := sequencer.Next(ctx)
		if err != nil {
			return nil, err
		}
		identifiers = append(identifiers, identifier)
	}

	return identifiers, nil
}
