package events

import (
	"net/http"

	eventstore "github.com/autoatlas-mx/autoatlas/internal/app/store/events"
	rsvpstore "github.com/autoatlas-mx/autoatlas/internal/app/store/rsvps"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// Handler serves the events panel, the public event pages, and RSVPs.
type Handler struct {
	Events *eventstore.Store
	RSVPs  *rsvpstore.Store
	Log    *zap.Logger

	// UpcomingLimit caps GET /events/upcoming; zero falls back to the
	// store default.
	UpcomingLimit int
}

func NewHandler(events *eventstore.Store, rsvps *rsvpstore.Store, upcomingLimit int, logger *zap.Logger) *Handler {
	return &Handler{
		Events:        events,
		RSVPs:         rsvps,
		Log:           logger,
		UpcomingLimit: upcomingLimit,
	}
}

func (h *Handler) internalError(w http.ResponseWriter, msg string, err error, fields ...zap.Field) {
	h.Log.Error(msg, append(fields, zap.Error(err))...)
	httpjson.Error(w, http.StatusInternalServerError, "Error interno")
}
