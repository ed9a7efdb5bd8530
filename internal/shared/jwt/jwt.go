package jwt

import (
	"context"
	"fmt"
	"time"
)

// Strategy selects the signing algorithm family.
type Strategy string

const (
	StrategyHMAC Strategy = "hmac"
)

// Options configures the token manager.
type Options struct {
	Strategy Strategy

	// Secret is the shared key for HMAC signing. Must be at least 32 bytes.
	Secret []byte

	// Algorithm is the exact signing algorithm: "HS256" (default), "HS384"
	// or "HS512".
	Algorithm string

	// Issuer is the default "iss" claim on issued tokens.
	Issuer string

	// TTL determines the "exp" claim. Zero means tokens do not expire.
	TTL time.Duration
}

// Claims carries the registered claims this service issues and verifies.
type Claims struct {
	// Subject is the authenticated user ID.
	Subject string

	// Issuer defaults to Options.Issuer when left empty at signing time.
	Issuer string

	// ExpiresAt defaults to time.Now() + Options.TTL at signing time.
	ExpiresAt time.Time

	// IssuedAt defaults to time.Now() at signing time.
	IssuedAt time.Time
}

// Signer creates signed tokens. Implementations must be safe for
// concurrent use.
type Signer interface {
	Sign(ctx context.Context, claims Claims) (string, error)
}

// Verifier validates token strings and returns their claims.
// Implementations must be safe for concurrent use.
type Verifier interface {
	Verify(ctx context.Context, tokenString string) (*Claims, error)
}

// TokenManager combines signing and verification.
type TokenManager interface {
	Signer
	Verifier
}

// New creates a TokenManager for the selected strategy.
func New(opts Options) (TokenManager, error) {
	switch opts.Strategy {
	case StrategyHMAC:
		return NewHMAC(opts)
	default:
		return nil, fmt.Errorf("jwt: unknown strategy %q", opts.Strategy)
	}
}
