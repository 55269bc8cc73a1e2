package components

import (
	"futsal-reserve/internal/handler"
	"futsal-reserve/internal/handler/api"
	"futsal-reserve/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewGroundHandler,
		api.NewPointHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
