package reviews

import (
	"github.com/autoatlas-mx/autoatlas/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter mounted under /reviews. Reads are public.
// Posting requires a verified account (checked in the handler); comments
// only need a session. Author-or-admin checks also live in the handlers.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Post("/{id}/comments", h.HandleCreateComment)
		pr.Delete("/{id}/comments/{commentID}", h.HandleDeleteComment)
	})

	return r
}
