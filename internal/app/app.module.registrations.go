package app

import (
	"github.com/Prabhugems/AMASI-management-sub013/internal/handlers"
	"github.com/Prabhugems/AMASI-management-sub013/internal/repository"
	"github.com/Prabhugems/AMASI-management-sub013/internal/services"
	sharedidempotency "github.com/Prabhugems/AMASI-management-sub013/internal/shared/idempotency"
	"go.uber.org/fx"
)

func RegistrationsModule() fx.Option {
	return fx.Module("registrations",
		fx.Provide(
			fx.Annotate(
				sharedidempotency.NewSQLXStore,
				fx.ParamTags(`name:"db_events"`),
				fx.ResultTags(`name:"import_idempotency_store"`),
				fx.As(new(sharedidempotency.Store)),
			),
			fx.Annotate(
				repository.NewRegistrationRepository,
				fx.ParamTags(`name:"db_events"`),
				fx.As(new(services.RegistrationRepository)),
			),
			fx.Annotate(
				services.NewRegistrationImportService,
				fx.As(new(handlers.RegistrationImportService)),
			),
			handlers.NewRegistrationImportHandler,
		),
		fx.Invoke(registerRegistrationRoutes),
	)
}
