package catalogapi

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /catalog. Everything here is
// public; the only write is the dealer-side lead insert.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/brands", h.ServeBrands)
	r.Get("/models", h.ServeModels)
	r.Get("/cars", h.ServeCars)
	r.Get("/cars/{id}", h.ServeCar)
	r.Get("/reviews", h.ServeReviews)
	r.Get("/communities", h.ServeCommunities)
	r.Get("/events", h.ServeEvents)
	r.Post("/leads", h.HandleSubmitLead)
	return r
}
