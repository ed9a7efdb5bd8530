package uid

import (
	"context"
	"fmt"
)

// Strategy selects the row-key generation algorithm.
type Strategy string

const (
	StrategySnowflake Strategy = "snowflake"
	StrategyUUIDv7    Strategy = "uuidv7"
)

// Options configures the generator.
type Options struct {
	Strategy Strategy

	// NodeID identifies this instance when running several binaries against
	// the same database (Snowflake only). Valid range: 0-1023.
	NodeID int64
}

// UIDGenerator produces opaque unique identifiers for new rows. These are
// internal keys, distinct from the human-facing numbers printed on badges
// and abstract books. Implementations must be safe for concurrent use.
type UIDGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// New creates a UIDGenerator for the selected strategy.
func New(opts Options) (UIDGenerator, error) {
	switch opts.Strategy {
	case StrategySnowflake:
		return NewSnowflake(opts.NodeID)
	case StrategyUUIDv7:
		return NewUUIDv7()
	default:
		return nil, fmt.Errorf("uid: unknown strategy %q", opts.Strategy)
	}
}
