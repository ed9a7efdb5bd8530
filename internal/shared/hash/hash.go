package hash

import (
	"context"
	"fmt"
)

// Strategy selects the password hashing algorithm.
type Strategy string

const (
	StrategyBcrypt Strategy = "bcrypt"
)

// Options configures the hasher.
type Options struct {
	Strategy Strategy

	// Cost is the bcrypt work factor. Zero uses bcrypt.DefaultCost.
	Cost int
}

// Hasher hashes and verifies secrets. Implementations must be safe for
// concurrent use.
type Hasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)

	// Compare returns nil when plaintext matches the hashed value.
	Compare(ctx context.Context, hashed, plaintext string) error
}

// New creates a Hasher for the selected strategy.
func New(opts Options) (Hasher, error) {
	switch opts.Strategy {
	case StrategyBcrypt:
		return NewBcrypt(opts.Cost)
	default:
		return nil, fmt.Errorf("hash: unknown strategy %q", opts.Strategy)
	}
}
