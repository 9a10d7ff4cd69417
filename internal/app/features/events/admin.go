package events

import (
	"context"
	"encoding/json"
	"net/http"

	eventstore "github.com/autoatlas-mx/autoatlas/internal/app/store/events"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/authz"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/gates"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/inputval"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeAdminList handles GET /events/all. Admins see everything; brand
// admins see only their own brand's events.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f := eventstore.ListFilter{}
	if authz.IsBrandAdmin(r) && !authz.IsAdmin(r) {
		brandID := authz.UserBrandID(r)
		if brandID.IsZero() {
			httpjson.Error(w, http.StatusForbidden, "No administras ninguna marca")
			return
		}
		f.BrandID = &brandID
	}

	evts, err := h.Events.List(ctx, f)
	if err != nil {
		h.internalError(w, "failed to list events", err)
		return
	}
	httpjson.OK(w, evts)
}

type createRequest struct {
	Title                string  `json:"title" validate:"required,max=200" label:"título"`
	Slug                 string  `json:"slug" validate:"omitempty,max=200" label:"slug"`
	Description          string  `json:"description" validate:"omitempty,max=5000" label:"descripción"`
	Date                 string  `json:"date" validate:"required,datetime=2006-01-02" label:"fecha"`
	Time                 string  `json:"time" validate:"omitempty,max=20" label:"hora"`
	Location             string  `json:"location" validate:"omitempty,max=300" label:"lugar"`
	BrandID              string  `json:"brand_id" validate:"omitempty" label:"marca"`
	Visible              bool    `json:"visible"`
	RequiresVerification bool    `json:"requires_verification"`
	Capacity             *int    `json:"capacity" validate:"omitempty,min=1" label:"cupo"`
}

// HandleCreate handles POST /events. A brand admin may only create
// events under their own brand; admins may create brandless events.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Cuerpo de la petición no válido")
		return
	}
	if res := inputval.Validate(req); res.HasErrors {
		httpjson.Error(w, http.StatusUnprocessableEntity, res.First)
		return
	}

	var brandID *primitive.ObjectID
	if req.BrandID != "" {
		id, err := primitive.ObjectIDFromHex(req.BrandID)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "Identificador de marca no válido")
			return
		}
		brandID = &id
	}

	if brandID != nil {
		if res := gates.RequireBrandScope(w, r, *brandID); !res.OK {
			return
		}
	} else if res := gates.RequireAdmin(w, r); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.Create(ctx, models.Event{
		BrandID:              brandID,
		Title:                req.Title,
		Slug:                 req.Slug,
		Description:          req.Description,
		Date:                 req.Date,
		Time:                 req.Time,
		Location:             req.Location,
		Visible:              req.Visible,
		RequiresVerification: req.RequiresVerification,
		Capacity:             req.Capacity,
	})
	if err != nil {
		if err == eventstore.ErrDuplicateSlug {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.internalError(w, "failed to create event", err, zap.String("title", req.Title))
		return
	}

	h.Log.Info("event created",
		zap.String("event_id", e.ID.Hex()),
		zap.String("slug", e.Slug))
	httpjson.Write(w, http.StatusCreated, e)
}

type updateRequest struct {
	Title                *string `json:"title" validate:"omitempty,min=1,max=200" label:"título"`
	Slug                 *string `json:"slug" validate:"omitempty,min=1,max=200" label:"slug"`
	Description          *string `json:"description" validate:"omitempty,max=5000" label:"descripción"`
	Date                 *string `json:"date" validate:"omitempty,datetime=2006-01-02" label:"fecha"`
	Time                 *string `json:"time" validate:"omitempty,max=20" label:"hora"`
	Location             *string `json:"location" validate:"omitempty,max=300" label:"lugar"`
	Visible              *bool   `json:"visible"`
	RequiresVerification *bool   `json:"requires_verification"`

	// Capacity distinguishes absent (leave alone), null (clear the cap),
	// and a number (set the cap). A plain pointer cannot tell the first
	// two apart, so it tracks presence through its own UnmarshalJSON.
	Capacity optionalInt `json:"capacity" validate:"-"`
}

// optionalInt records whether the field appeared in the request body at
// all. encoding/json only calls UnmarshalJSON for present fields, null
// included.
type optionalInt struct {
	Present bool
	Value   *int
}

func (o *optionalInt) UnmarshalJSON(b []byte) error {
	o.Present = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// loadScopedEvent fetches the event and enforces brand scope, writing
// the error response itself on failure.
func (h *Handler) loadScopedEvent(w http.ResponseWriter, r *http.Request, ctx context.Context) *models.Event {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return nil
	}

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, eventstore.ErrEventNotFound.Error())
		return nil
	}

	if e.BrandID != nil {
		if res := gates.RequireBrandScope(w, r, *e.BrandID); !res.OK {
			return nil
		}
	} else if res := gates.RequireAdmin(w, r); !res.OK {
		return nil
	}
	return e
}

// HandleUpdate handles PATCH /events/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e := h.loadScopedEvent(w, r, ctx)
	if e == nil {
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Cuerpo de la petición no válido")
		return
	}
	if res := inputval.Validate(req); res.HasErrors {
		httpjson.Error(w, http.StatusUnprocessableEntity, res.First)
		return
	}

	if req.Capacity.Present && req.Capacity.Value != nil && *req.Capacity.Value < 1 {
		httpjson.Error(w, http.StatusUnprocessableEntity, "El cupo debe ser al menos 1")
		return
	}

	upd := eventstore.EventUpdate{
		Title:                req.Title,
		Slug:                 req.Slug,
		Description:          req.Description,
		Date:                 req.Date,
		Time:                 req.Time,
		Location:             req.Location,
		Visible:              req.Visible,
		RequiresVerification: req.RequiresVerification,
	}
	if req.Capacity.Present {
		upd.Capacity = &req.Capacity.Value
	}
	if err := h.Events.Update(ctx, e.ID, upd); err != nil {
		switch err {
		case eventstore.ErrEventNotFound:
			httpjson.Error(w, http.StatusNotFound, err.Error())
		case eventstore.ErrDuplicateSlug:
			httpjson.Error(w, http.StatusConflict, err.Error())
		default:
			h.internalError(w, "failed to update event", err, zap.String("event_id", e.ID.Hex()))
		}
		return
	}

	updated, err := h.Events.GetByID(ctx, e.ID)
	if err != nil {
		h.internalError(w, "failed to reload event", err, zap.String("event_id", e.ID.Hex()))
		return
	}
	httpjson.OK(w, updated)
}

// HandleDelete handles DELETE /events/{id}. RSVPs for the event are
// removed with it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e := h.loadScopedEvent(w, r, ctx)
	if e == nil {
		return
	}

	if err := h.Events.Delete(ctx, e.ID); err != nil {
		if err == eventstore.ErrEventNotFound {
			httpjson.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.internalError(w, "failed to delete event", err, zap.String("event_id", e.ID.Hex()))
		return
	}

	h.Log.Info("event deleted", zap.String("event_id", e.ID.Hex()))
	httpjson.OK(w, map[string]string{"message": "Evento eliminado"})
}
