package events

import (
	"context"
	"net/http"

	eventstore "github.com/autoatlas-mx/autoatlas/internal/app/store/events"
	rsvpstore "github.com/autoatlas-mx/autoatlas/internal/app/store/rsvps"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/authz"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleRSVP handles POST /events/{id}/rsvp. Events that require
// verification reject plain users; a capacity cap rejects when full. The
// capacity check reads the count before inserting, so a burst can
// slightly overshoot the cap.
func (h *Handler) HandleRSVP(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Necesitas iniciar sesión")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil || !e.Visible {
		httpjson.Error(w, http.StatusNotFound, eventstore.ErrEventNotFound.Error())
		return
	}

	if e.RequiresVerification && !authz.IsVerified(r) {
		httpjson.Error(w, http.StatusForbidden,
			"Este evento requiere una cuenta verificada")
		return
	}

	if e.Capacity != nil {
		n, err := h.RSVPs.CountByEvent(ctx, id)
		if err != nil {
			h.internalError(w, "failed to count rsvps", err, zap.String("event_id", id.Hex()))
			return
		}
		if n >= int64(*e.Capacity) {
			httpjson.Error(w, http.StatusConflict, "El evento está lleno")
			return
		}
	}

	rsvp, err := h.RSVPs.Create(ctx, id, userID)
	if err != nil {
		if err == rsvpstore.ErrAlreadyRegistered {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.internalError(w, "failed to create rsvp", err,
			zap.String("event_id", id.Hex()),
			zap.String("user_id", userID.Hex()))
		return
	}

	h.Log.Info("rsvp created",
		zap.String("event_id", id.Hex()),
		zap.String("user_id", userID.Hex()))
	httpjson.Write(w, http.StatusCreated, rsvp)
}

// HandleCancelRSVP handles DELETE /events/{id}/rsvp.
func (h *Handler) HandleCancelRSVP(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Necesitas iniciar sesión")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.RSVPs.Delete(ctx, id, userID)
	if err != nil {
		h.internalError(w, "failed to cancel rsvp", err,
			zap.String("event_id", id.Hex()),
			zap.String("user_id", userID.Hex()))
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "No estás registrado en este evento")
		return
	}
	httpjson.OK(w, map[string]string{"message": "Registro cancelado"})
}

// ServeRSVPList handles GET /events/{id}/rsvps for the event's managing
// brand or an admin.
func (h *Handler) ServeRSVPList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	e := h.loadScopedEvent(w, r, ctx)
	if e == nil {
		return
	}

	rsvps, err := h.RSVPs.ListByEvent(ctx, e.ID)
	if err != nil {
		h.internalError(w, "failed to list rsvps", err, zap.String("event_id", e.ID.Hex()))
		return
	}
	httpjson.OK(w, rsvps)
}
