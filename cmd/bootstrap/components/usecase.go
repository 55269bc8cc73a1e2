package components

import (
	"futsal-reserve/internal/domain/reservation"
	"futsal-reserve/internal/pkg/clock"
	"futsal-reserve/internal/usecase"
	"futsal-reserve/internal/usecase/commands"
	"futsal-reserve/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	reservation.NewFactory,
	usecase.NewTokenValidator,
	usecase.NewAuthUseCase,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewPointQueries,
		queries.NewGroundQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewPointCommands,
	),
)
