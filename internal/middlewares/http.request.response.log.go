package middlewares

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
)

// NewHTTPRequestResponseLogMiddleware emits one structured record per
// request after the handler chain finishes.
func NewHTTPRequestResponseLogMiddleware(logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c fiber.Ctx) error {
		start := time.Now().UTC()
		err := c.Next()
		latency := time.Since(start)

		attrs := []any{
			"request_id", RequestIDFromContext(c),
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency_ms", latency.Milliseconds(),
			"bytes_out", len(c.Response().Body()),
			"client_ip", c.IP(),
			"user_agent", c.Get(fiber.HeaderUserAgent),
		}

		if err != nil {
			logger.Error("http_request", append(attrs, "error", err.Error())...)
			return err
		}

		logger.Info("http_request", attrs...)
		return nil
	}
}
