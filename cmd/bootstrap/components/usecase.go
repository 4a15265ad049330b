package components

import (
	"lab-seat-reservation/internal/domain/reservation"
	"lab-seat-reservation/internal/pkg/clock"
	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/usecase"
	"lab-seat-reservation/internal/usecase/commands"
	"lab-seat-reservation/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(clk clock.Clock, cfg config.ReservationConfig) *reservation.Factory {
		return reservation.NewFactory(clk, cfg.MaxSeatsPerHold)
	},
	commands.NewConflictResolver,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewReservationUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewReservationQueries,
		queries.NewVenueQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
		usecase.NewPasswordAuthenticator,
	),
)
