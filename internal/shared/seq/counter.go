package seq

import (
	"context"
	"fmt"
)

// NextValueFunc atomically advances a scope's counter and returns the new
// value. The increment must happen server-side in a single operation; this
// package never reads the counter before writing it.
type NextValueFunc func(ctx context.Context) (int64, error)

var _ Sequencer = (*counterSequencer)(nil)

type counterSequencer struct {
	format Format
	next   NextValueFunc
}

// NewCounter creates a Sequencer backed by an atomic next-value operation.
// A transient failure of the operation surfaces as a retryable error from
// Next; the conflict-retry loop treats it the same as an insert conflict.
func NewCounter(format Format, next NextValueFunc) (Sequencer, error) {
	if format.Prefix == "" {
		return nil, fmt.Errorf("seq: format prefix is required")
	}
	if next == nil {
		return nil, fmt.Errorf("seq: next-value operation is required")
	}
	return &counterSequencer{format: format, next: next}, nil
}

func (s *counterSequencer) Next(ctx context.Context) (string, error) {
	value, err := s.next(ctx)
	if err != nil {
		return "", fmt.Errorf("seq: counter next value failed: %w", err)
	}
	return s.format.Render(value), nil
}
