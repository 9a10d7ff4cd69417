package events

import (
	"github.com/autoatlas-mx/autoatlas/internal/app/system/auth"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter mounted under /events. Public reads, RSVP
// for signed-in users, management for admins and brand admins. Brand
// scoping happens in the handlers because it depends on the event's
// brand, not the route.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/upcoming", h.ServeUpcoming)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleBrandAdmin, models.RoleAdmin))

		pr.Get("/all", h.ServeAdminList)
		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Get("/{id}/rsvps", h.ServeRSVPList)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Post("/{id}/rsvp", h.HandleRSVP)
		pr.Delete("/{id}/rsvp", h.HandleCancelRSVP)
	})

	r.Get("/{slug}", h.ServeBySlug)

	return r
}
