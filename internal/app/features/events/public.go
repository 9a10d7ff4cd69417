package events

import (
	"context"
	"net/http"
	"time"

	eventstore "github.com/autoatlas-mx/autoatlas/internal/app/store/events"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeUpcoming handles GET /events/upcoming: visible events dated today
// or later, soonest first.
func (h *Handler) ServeUpcoming(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	limit := h.UpcomingLimit
	if limit <= 0 {
		limit = eventstore.DefaultUpcomingLimit
	}

	today := time.Now().UTC().Format("2006-01-02")
	evts, err := h.Events.Upcoming(ctx, today, limit)
	if err != nil {
		h.internalError(w, "failed to list upcoming events", err)
		return
	}
	httpjson.OK(w, evts)
}

// ServeBySlug handles GET /events/{slug}. Hidden events 404 for the
// public; the admin panel reads them through /events/all.
func (h *Handler) ServeBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil || !e.Visible {
		httpjson.Error(w, http.StatusNotFound, eventstore.ErrEventNotFound.Error())
		return
	}
	httpjson.OK(w, e)
}
