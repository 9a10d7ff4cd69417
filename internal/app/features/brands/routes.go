package brands

import (
	"github.com/autoatlas-mx/autoatlas/internal/app/system/auth"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter mounted under /brands. Reads are public,
// writes are admin only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServePublicList)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Get("/all", h.ServeAdminList)
		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	// Registered after /all so the literal route wins.
	r.Get("/{slug}", h.ServeBySlug)

	return r
}
