package jwt

import (
	"context"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var _ TokenManager = (*hmacManager)(nil)

type hmacManager struct {
	secret []byte
	method jwtlib.SigningMethod
	issuer string
	ttl    time.Duration
}

// NewHMAC creates an HMAC-based TokenManager. The secret must be at least
// 32 bytes.
func NewHMAC(opts Options) (TokenManager, error) {
	if len(opts.Secret) == 0 {
		return nil, fmt.Errorf("jwt: HMAC secret must not be empty")
	}
	if len(opts.Secret) < 32 {
		return nil, fmt.Errorf("jwt: HMAC secret must be at least 32 bytes, got %d", len(opts.Secret))
	}

	method, err := resolveHMACMethod(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	return &hmacManager{
		secret: opts.Secret,
		method: method,
		issuer: opts.Issuer,
		ttl:    opts.TTL,
	}, nil
}

func resolveHMACMethod(alg string) (jwtlib.SigningMethod, error) {
	switch alg {
	case "", "HS256":
		return jwtlib.SigningMethodHS256, nil
	case "HS384":
		return jwtlib.SigningMethodHS384, nil
	case "HS512":
		return jwtlib.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("jwt: unsupported HMAC algorithm %q", alg)
	}
}

func (m *hmacManager) Sign(_ context.Context, claims Claims) (string, error) {
	now := time.Now()

	registered := jwtlib.RegisteredClaims{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
	}
	if registered.Issuer == "" {
		registered.Issuer = m.issuer
	}

	if !claims.IssuedAt.IsZero() {
		registered.IssuedAt = jwtlib.NewNumericDate(claims.IssuedAt)
	} else {
		registered.IssuedAt = jwtlib.NewNumericDate(now)
	}

	if !claims.ExpiresAt.IsZero() {
		registered.ExpiresAt = jwtlib.NewNumericDate(claims.ExpiresAt)
	} else if m.ttl > 0 {
		registered.ExpiresAt = jwtlib.NewNumericDate(now.Add(m.ttl))
	}

	signed, err := jwtlib.NewWithClaims(m.method, registered).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *hmacManager) Verify(_ context.Context, tokenString string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(
		tokenString,
		&jwtlib.RegisteredClaims{},
		func(token *jwtlib.Token) (any, error) {
			if token.Method.Alg() != m.method.Alg() {
				return nil, fmt.Errorf("jwt: unexpected signing method %q", token.Method.Alg())
			}
			return m.secret, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("jwt: token validation failed: %w", err)
	}

	registered, ok := token.Claims.(*jwtlib.RegisteredClaims)
	if !ok {
		return nil, fmt.Errorf("jwt: unexpected claims type")
	}

	claims := &Claims{
		Subject: registered.Subject,
		Issuer:  registered.Issuer,
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	return claims, nil
}
