package app

import (
	"github.com/Prabhugems/AMASI-management-sub013/internal/handlers"
	"github.com/Prabhugems/AMASI-management-sub013/internal/repository"
	"github.com/Prabhugems/AMASI-management-sub013/internal/services"
	"go.uber.org/fx"
)

// AuthModule wires staff login against the auth database. Every binary
// carries it so protected routes can always be reached.
func AuthModule() fx.Option {
	return fx.Module("auth",
		fx.Provide(
			fx.Annotate(
				repository.NewAuthLoginRepository,
				fx.ParamTags(`name:"db_auth"`),
				fx.As(new(services.AuthLoginRepository)),
			),
			fx.Annotate(
				services.NewAuthLoginService,
				fx.As(new(handlers.AuthLoginService)),
			),
			handlers.NewAuthLoginHandler,
		),
		fx.Invoke(registerAuthRoutes),
	)
}
