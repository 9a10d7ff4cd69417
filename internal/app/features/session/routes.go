package session

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSession)
	r.Post("/logout", h.HandleLogout)
	return r
}
