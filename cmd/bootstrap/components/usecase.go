package components

import (
	"rentbook/internal/domain/booking"
	"rentbook/internal/pkg/clock"
	"rentbook/internal/pkg/config"
	"rentbook/internal/usecase/commands"
	"rentbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewBookingConfig,
	NewEngine,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewItemUseCase,
		commands.NewReservationUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewItemQueries,
		queries.NewAvailabilityQueries,
	),
)

func NewBookingConfig(cfg config.Config) config.BookingConfig {
	return cfg.Booking
}

func NewEngine(clk clock.Clock, cfg config.BookingConfig) (*booking.Engine, error) {
	policy, err := booking.ParseEmptyAllowedPolicy(cfg.EmptyAllowedPolicy)
	if err != nil {
		return nil, err
	}
	return booking.NewEngine(clk, policy), nil
}
