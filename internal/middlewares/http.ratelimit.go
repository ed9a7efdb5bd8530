package middlewares

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/Prabhugems/AMASI-management-sub013/internal/shared/ratelimit"
)

type RateLimitConfig struct {
	Limiter      ratelimit.Limiter
	KeyExtractor func(c fiber.Ctx) string
	Logger       *slog.Logger
}

// NewHTTPRateLimitMiddleware throttles requests through the configured
// limiter and surfaces the decision in X-RateLimit-* headers. A nil limiter
// disables the middleware rather than failing every request.
func NewHTTPRateLimitMiddleware(cfg RateLimitConfig) fiber.Handler {
	if cfg.Limiter == nil {
		return func(c fiber.Ctx) error {
			return c.Next()
		}
	}

	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = PerUserKeyExtractor("")
	}

	return func(c fiber.Ctx) error {
		key := cfg.KeyExtractor(c)

		result, err := cfg.Limiter.AllowKey(c.Context(), key)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("rate limit check failed", "error", err, "key", key)
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		c.Set("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set("Retry-After", strconv.Itoa(retryAfter))

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter,
			})
		}

		return c.Next()
	}
}

// PerUserKeyExtractor keys the limit on the authenticated user, falling back
// to the client IP for requests that reach the limiter unauthenticated.
func PerUserKeyExtractor(prefix string) func(c fiber.Ctx) string {
	if prefix != "" {
		prefix += ":"
	}

	return func(c fiber.Ctx) string {
		if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
			return prefix + "user:" + userID
		}
		return prefix + "ip:" + c.IP()
	}
}
