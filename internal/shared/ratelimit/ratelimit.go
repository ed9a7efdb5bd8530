// Package ratelimit throttles requests per caller-supplied key with
// pluggable algorithms over a shared store. Implementations are safe for
// concurrent use.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Algorithm selects how the window is accounted.
type Algorithm string

const (
	// AlgorithmTokenBucket refills steadily and absorbs bursts up to Burst.
	AlgorithmTokenBucket Algorithm = "token_bucket"

	// AlgorithmSlidingWindow counts exact request timestamps. No burst
	// allowance.
	AlgorithmSlidingWindow Algorithm = "sliding_window"

	// AlgorithmFixedWindow is a plain counter per window. Cheapest, but
	// permits bursts across window boundaries.
	AlgorithmFixedWindow Algorithm = "fixed_window"
)

// Result is the limiter decision plus the metadata surfaced in response
// headers.
type Result struct {
	Allowed   bool
	Limit     int64
	Remaining int64

	// ResetAt is when the current window ends.
	ResetAt time.Time

	// RetryAfter is how long a denied caller should wait.
	RetryAfter time.Duration
}

// Config configures the limiter.
type Config struct {
	Algorithm Algorithm

	// Limit is the number of requests allowed per Window.
	Limit int64

	// Window is the accounting period.
	Window time.Duration

	// Burst caps temporary exceedance (token bucket only). Zero defaults
	// to Limit.
	Burst int64

	// OnLimited fires when a request is denied, for logging or metrics.
	OnLimited func(ctx context.Context, key string, result Result)
}

// Store persists per-key counters. Implementations must be safe for
// concurrent use.
type Store interface {
	// Allow consumes one slot for key and reports the decision.
	Allow(ctx context.Context, key string, config Config) (Result, error)

	// Reset clears the counters for key.
	Reset(ctx context.Context, key string) error

	Close() error
}

// Limiter throttles requests by key. Keys are produced by the transport
// layer (per user, per IP) and are opaque here.
type Limiter interface {
	AllowKey(ctx context.Context, key string) (Result, error)
	ResetKey(ctx context.Context, key string) error
	Close() error
}

type limiter struct {
	store  Store
	config Config
}

// New creates a Limiter over the given store.
func New(store Store, config Config) (Limiter, error) {
	if store == nil {
		return nil, fmt.Errorf("ratelimit: store is required")
	}
	if config.Limit <= 0 {
		return nil, fmt.Errorf("ratelimit: limit must be positive")
	}
	if config.Window <= 0 {
		return nil, fmt.Errorf("ratelimit: window must be positive")
	}

	if config.Algorithm == "" {
		config.Algorithm = AlgorithmTokenBucket
	}
	if config.Burst <= 0 {
		config.Burst = config.Limit
	}

	return &limiter{
		store:  store,
		config: config,
	}, nil
}

func (l *limiter) AllowKey(ctx context.Context, key string) (Result, error) {
	result, err := l.store.Allow(ctx, key, l.config)
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: store error: %w", err)
	}

	if !result.Allowed && l.config.OnLimited != nil {
		l.config.OnLimited(ctx, key, result)
	}

	return result, nil
}

func (l *limiter) ResetKey(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}

func (l *limiter) Close() error {
	return l.store.Close()
}
