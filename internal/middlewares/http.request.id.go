package middlewares

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

const RequestIDHeader = "X-Request-ID"

func NewHTTPRequestIDMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{
		Header: RequestIDHeader,
	})
}

// RequestIDFromContext returns the id assigned by the middleware, falling
// back to the inbound header when the middleware did not run.
func RequestIDFromContext(c fiber.Ctx) string {
	if id := requestid.FromContext(c); id != "" {
		return id
	}
	return c.Get(RequestIDHeader)
}
