package jwt

import "context"

type contextKey struct{}

// SetClaims attaches verified claims to the context. Called by the auth
// middleware after a successful Verify.
func SetClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// GetClaims extracts the claims placed by SetClaims, reporting whether any
// were present.
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok
}
