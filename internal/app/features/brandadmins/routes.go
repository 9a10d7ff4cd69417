package brandadmins

import (
	"github.com/autoatlas-mx/autoatlas/internal/app/system/auth"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter mounted under /brand-admins. Assignment and
// removal are admin only; /me is for the delegated brand admin.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleAssign)
		pr.Delete("/{userID}", h.HandleRemove)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleBrandAdmin, models.RoleAdmin))

		pr.Get("/me", h.ServeMine)
	})

	return r
}
