package components

import (
	"rentbook/internal/handler"
	"rentbook/internal/handler/api"
	"rentbook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewItemHandler,
		api.NewAvailabilityHandler,
		api.NewReservationHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
