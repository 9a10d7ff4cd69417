package banners

import (
	"github.com/autoatlas-mx/autoatlas/internal/app/system/auth"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter mounted under /banners. The public list is
// open; everything else is admin only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServePublicList)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Get("/all", h.ServeAdminList)
		pr.Post("/", h.HandleCreate)
		pr.Put("/reorder", h.HandleReorder)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
