package components

import (
	"lab-seat-reservation/internal/handler"
	"lab-seat-reservation/internal/handler/api"
	"lab-seat-reservation/internal/handler/middleware"

	"go.uber.org/fx"
)

type handlerParams struct {
	fx.In

	Auth        *api.AuthHandler
	Reservation *api.ReservationHandler
	Venue       *api.VenueHandler
	User        *api.UserHandler
}

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewVenueHandler,
		api.NewUserHandler,
		middleware.NewAuthMiddleware,
		func(p handlerParams) handler.Handlers {
			return handler.Handlers{
				Auth:        p.Auth,
				Reservation: p.Reservation,
				Venue:       p.Venue,
				User:        p.User,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
