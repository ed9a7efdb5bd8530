package app

import (
	"github.com/Prabhugems/AMASI-management-sub013/internal/handlers"
	"github.com/Prabhugems/AMASI-management-sub013/internal/repository"
	"github.com/Prabhugems/AMASI-management-sub013/internal/services"
	"go.uber.org/fx"
)

func AbstractsModule() fx.Option {
	return fx.Module("abstracts",
		fx.Provide(
			fx.Annotate(
				provideSubmissionRateLimiter,
				fx.ResultTags(`name:"submission_rate_limiter"`),
			),
			fx.Annotate(
				repository.NewAbstractRepository,
				fx.ParamTags(`name:"db_events"`),
				fx.As(new(services.AbstractRepository)),
			),
			fx.Annotate(
				services.NewAbstractService,
				fx.As(new(handlers.AbstractService)),
			),
			handlers.NewAbstractHandler,
		),
		fx.Invoke(registerAbstractRoutes),
	)
}
