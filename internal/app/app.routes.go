package app

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"

	"github.com/Prabhugems/AMASI-management-sub013/internal/handlers"
	"github.com/Prabhugems/AMASI-management-sub013/internal/middlewares"
	sharedidempotency "github.com/Prabhugems/AMASI-management-sub013/internal/shared/idempotency"
	sharedjwt "github.com/Prabhugems/AMASI-management-sub013/internal/shared/jwt"
	sharedratelimit "github.com/Prabhugems/AMASI-management-sub013/internal/shared/ratelimit"
)

type routerGroupsOut struct {
	fx.Out
	Public    fiber.Router `name:"api_public"`
	Protected fiber.Router `name:"api_protected"`
}

func provideRouterGroups(
	app *fiber.App,
	logger *slog.Logger,
	tokenManager sharedjwt.TokenManager,
) routerGroupsOut {
	app.Use(middlewares.NewHTTPRecoveryMiddleware())
	app.Use(middlewares.NewHTTPRequestIDMiddleware())
	app.Use(middlewares.NewHTTPCORSMiddleware())
	app.Use(middlewares.NewHTTPRequestResponseLogMiddleware(logger))

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")
	protected := api.Group("", middlewares.NewHTTPJWTMiddleware(tokenManager))

	return routerGroupsOut{
		Public:    api,
		Protected: protected,
	}
}

type authRoutesIn struct {
	fx.In
	Public  fiber.Router `name:"api_public"`
	Handler *handlers.AuthLoginHandler
}

func registerAuthRoutes(in authRoutesIn) {
	in.Handler.Register(in.Public)
}

type abstractRoutesIn struct {
	fx.In
	Protected   fiber.Router            `name:"api_protected"`
	RateLimiter sharedratelimit.Limiter `name:"submission_rate_limiter"`
	Logger      *slog.Logger
	Handler     *handlers.AbstractHandler
}

func registerAbstractRoutes(in abstractRoutesIn) {
	rateLimitMiddleware := middlewares.NewHTTPRateLimitMiddleware(middlewares.RateLimitConfig{
		Limiter:      in.RateLimiter,
		Logger:       in.Logger,
		KeyExtractor: middlewares.PerUserKeyExtractor("abstracts"),
	})

	abstractRouter := in.Protected.Group("", rateLimitMiddleware)
	in.Handler.Register(abstractRouter)
}

type registrationRoutesIn struct {
	fx.In
	Protected        fiber.Router            `name:"api_protected"`
	IdempotencyStore sharedidempotency.Store `name:"import_idempotency_store"`
	Handler          *handlers.RegistrationImportHandler
}

func registerRegistrationRoutes(in registrationRoutesIn) {
	importRouter := in.Protected.Group("", middlewares.NewHTTPImportIdempotencyMiddleware(in.IdempotencyStore))
	in.Handler.Register(importRouter)
}
