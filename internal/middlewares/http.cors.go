package middlewares

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// NewHTTPCORSMiddleware allows the organiser front office to call the API
// from the browser. Idempotency-Key must be listed or preflight strips it
// from import requests.
func NewHTTPCORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"Origin, Content-Type, Accept, Authorization, X-Idempotency-Key"},
		AllowMethods: []string{"GET, POST, OPTIONS"},
	})
}
