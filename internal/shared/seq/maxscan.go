package seq

import (
	"context"
	"fmt"
)

// seedFloor is the starting value when a scope has no matching identifiers
// yet, so the first allocated value is seedFloor+1.
const seedFloor = 1000

// ListFunc fetches the identifiers already persisted for the scope's prefix.
type ListFunc func(ctx context.Context) ([]string, error)

var _ Sequencer = (*maxScanSequencer)(nil)

// maxScanSequencer scans the existing identifiers once, seeds a local cursor
// at the highest numeric suffix found, and counts up from there. The cursor
// advances on every Next call, so candidates are collision-free within the
// run even when individual rows later fail.
//
// Not safe against a concurrent run over the same scope and prefix: both
// runs may scan the same maximum and allocate overlapping ranges. Making
// that safe needs an atomic counter in the persistence layer; use
// StrategyCounter where one exists.
type maxScanSequencer struct {
	format Format
	list   ListFunc
	seeded bool
	cursor int64
}

// NewMaxScan creates a Sequencer that seeds from a prefix scan of existing
// identifiers. The scan runs lazily on the first Next call, once per run.
func NewMaxScan(format Format, list ListFunc) (Sequencer, error) {
	if format.Prefix == "" {
		return nil, fmt.Errorf("seq: format prefix is required")
	}
	if list == nil {
		return nil, fmt.Errorf("seq: list operation is required")
	}
	return &maxScanSequencer{format: format, list: list}, nil
}

func (s *maxScanSequencer) Next(ctx context.Context) (string, error) {
	if !s.seeded {
		seed, err := s.seed(ctx)
		if err != nil {
			return "", err
		}
		s.cursor = seed
		s.seeded = true
	}

	s.cursor++
	return s.format.Render(s.cursor), nil
}

func (s *maxScanSequencer) seed(ctx context.Context) (int64, error) {
	existing, err := s.list(ctx)
	if err != nil {
		return 0, fmt.Errorf("seq: prefix scan failed: %w", err)
	}

	highest := int64(seedFloor)
	for _, identifier := range existing {
		value, ok := s.format.ParseSuffix(identifier)
		if !ok {
			// Historical identifiers in another format are skipped.
			continue
		}
		if value > highest {
			highest = value
		}
	}

	return highest, nil
}
