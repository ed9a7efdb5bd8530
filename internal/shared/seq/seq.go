// Package seq allocates short, human-readable sequential identifiers
// (abstract numbers, registration numbers) that must stay unique within an
// event even when several clients submit at the same time. The only
// uniqueness enforcement available is the database's duplicate-key check on
// insert, so allocation is attempt-based: request a candidate, try the
// insert, and re-allocate on conflict.
package seq

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

// Strategy defines which allocation algorithm to use.
type Strategy string

const (
	// StrategyCounter allocates from an atomic server-side counter.
	// Preferred when the persistence layer exposes one.
	StrategyCounter Strategy = "counter"

	// StrategyMaxScan allocates by scanning existing identifiers for the
	// highest numeric suffix and counting up from there. Only safe for a
	// single batch writer per scope and prefix.
	StrategyMaxScan Strategy = "maxscan"
)

// Format describes how an identifier is rendered from its numeric suffix,
// e.g. {Prefix: "121A"} renders 1005 as "121A1005" and
// {Prefix: "FMAS108-", Width: 4} renders 1 as "FMAS108-0001".
type Format struct {
	// Prefix is everything before the numeric suffix, including any
	// separator character. Must be non-empty.
	Prefix string

	// Width zero-pads the numeric suffix to this many digits. Zero
	// disables padding.
	Width int
}

// Render returns the identifier for the given sequence value.
func (f Format) Render(value int64) string {
	if f.Width > 0 {
		return fmt.Sprintf("%s%0*d", f.Prefix, f.Width, value)
	}
	return fmt.Sprintf("%s%d", f.Prefix, value)
}

// Pattern returns the regular expression matching identifiers in this
// format, capturing the numeric suffix.
func (f Format) Pattern() *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(f.Prefix) + `(\d+)$`)
}

// ParseSuffix recovers the numeric suffix from an identifier. The second
// return value is false when the identifier does not match the format;
// callers treat such identifiers as historical data in another format, not
// as errors.
func (f Format) ParseSuffix(identifier string) (int64, bool) {
	match := f.Pattern().FindStringSubmatch(identifier)
	if match == nil {
		return 0, false
	}

	value, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

// Sequencer is the interface consumers depend on for requesting candidate
// identifiers. Every call returns a fresh candidate; a candidate rejected by
// an insert is never handed out again within the same run.
type Sequencer interface {
	Next(ctx context.Context) (string, error)
}

// Options configures the sequencer.
type Options struct {
	// Strategy selects the allocation algorithm.
	Strategy Strategy

	// Format renders candidates and, for StrategyMaxScan, recovers the
	// numeric suffix from existing identifiers.
	Format Format

	// NextValue is the atomic next-value operation. Required for
	// StrategyCounter.
	NextValue NextValueFunc

	// List fetches the existing identifiers for the scope's prefix.
	// Required for StrategyMaxScan.
	List ListFunc
}

// New creates a Sequencer based on the provided options.
// Returns an error if the strategy is unknown or configuration is invalid.
func New(opts Options) (Sequencer, error) {
	switch opts.Strategy {
	case StrategyCounter:
		return NewCounter(opts.Format, opts.NextValue)
	case StrategyMaxScan:
		return NewMaxScan(opts.Format, opts.List)
	default:
		return nil, fmt.Errorf("seq: unknown strategy %q", opts.Strategy)
	}
}
