package router

import (
	"gearshare/internal/handlers/booking"
	"gearshare/internal/handlers/item"
	"gearshare/internal/handlers/request"
	"gearshare/internal/handlers/user"
	"gearshare/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	User    user.Handler
	Item    item.Handler
	Booking booking.Handler
	Request request.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Middleware     middleware.AppMiddleware
}

// SetupRoutes mounts the domain routers. Everything except the user CRUD
// requires the X-Sharer-User-Id header.
func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.User.Router(router)

	router.Group(func(routerGroup chi.Router) {
		routerGroup.Use(r.Middleware.Identity)

		r.DomainHandlers.Item.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Request.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middleware:     appMiddleware,
	}
}
