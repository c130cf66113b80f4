package router

import (
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/backup"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/system"
	"hotel/internal/handlers/user"
	"hotel/internal/handlers/view"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Booking booking.Handler
	Room    room.Handler
	User    user.Handler
	Backup  backup.Handler
	System  system.Handler
	View    view.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/api", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Backup.Router(routerGroup)
		r.DomainHandlers.System.Router(routerGroup)
	})

	r.DomainHandlers.View.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
