package leads

import (
	"context"
	"net/http"
	"strconv"

	leadstore "github.com/autoatlas-mx/autoatlas/internal/app/store/leads"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/inputval"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"github.com/autoatlas-mx/autoatlas/internal/catalog"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves lead capture and the admin lead pipeline. Captured
// leads are written to the document store and mirrored into the catalog
// database for the dealer tooling; the mirror write is best effort.
type Handler struct {
	Leads   *leadstore.Store
	Catalog *catalog.Service
	Log     *zap.Logger
}

func NewHandler(leads *leadstore.Store, cat *catalog.Service, logger *zap.Logger) *Handler {
	return &Handler{Leads: leads, Catalog: cat, Log: logger}
}

func (h *Handler) internalError(w http.ResponseWriter, msg string, err error, fields ...zap.Field) {
	h.Log.Error(msg, append(fields, zap.Error(err))...)
	httpjson.Error(w, http.StatusInternalServerError, "Error interno")
}

type captureRequest struct {
	CarID   string `json:"car_id" validate:"required,max=40" label:"vehículo"`
	Name    string `json:"name" validate:"required,max=160" label:"nombre"`
	Email   string `json:"email" validate:"required,email,max=160" label:"correo"`
	Phone   string `json:"phone" validate:"omitempty,max=30" label:"teléfono"`
	Message string `json:"message" validate:"omitempty,max=2000" label:"mensaje"`
}

// HandleCapture handles POST /leads, the public interest form. The car
// must exist in the catalog.
func (h *Handler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Cuerpo de la petición no válido")
		return
	}
	if res := inputval.Validate(req); res.HasErrors {
		httpjson.Error(w, http.StatusUnprocessableEntity, res.First)
		return
	}

	trimID, err := strconv.ParseUint(req.CarID, 10, 32)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador de vehículo no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	car, err := h.Catalog.FetchCarByID(ctx, uint(trimID))
	if err != nil {
		h.internalError(w, "failed to look up car for lead", err, zap.String("car_id", req.CarID))
		return
	}
	if car == nil {
		httpjson.Error(w, http.StatusNotFound, "Vehículo no encontrado")
		return
	}

	lead, err := h.Leads.Create(ctx, models.Lead{
		CarID:   req.CarID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		h.internalError(w, "failed to create lead", err)
		return
	}

	// Mirror into the catalog side. The document record is the system of
	// record; a failed mirror is logged, not surfaced.
	mirror := catalog.CatalogLead{
		TrimID:    uint(trimID),
		Reference: lead.Reference,
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Message:   lead.Message,
	}
	if _, err := h.Catalog.SubmitLead(ctx, mirror); err != nil {
		h.Log.Warn("failed to mirror lead into catalog", zap.Error(err),
			zap.String("reference", lead.Reference))
	}

	h.Log.Info("lead captured",
		zap.String("lead_id", lead.ID.Hex()),
		zap.String("reference", lead.Reference),
		zap.String("car_id", lead.CarID))

	httpjson.Write(w, http.StatusCreated, map[string]string{
		"message":   "Hemos recibido tu solicitud",
		"reference": lead.Reference,
	})
}

// ServeList handles GET /leads with an optional ?status= filter.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	leads, err := h.Leads.List(ctx, r.URL.Query().Get("status"))
	if err != nil {
		h.internalError(w, "failed to list leads", err)
		return
	}
	httpjson.OK(w, leads)
}

// ServeView handles GET /leads/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	l, err := h.Leads.GetByID(ctx, id)
	if err != nil {
		if err == leadstore.ErrLeadNotFound {
			httpjson.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.internalError(w, "failed to load lead", err, zap.String("lead_id", id.Hex()))
		return
	}
	httpjson.OK(w, l)
}

type statusRequest struct {
	Status string `json:"status" validate:"required" label:"estado"`
}

// HandleSetStatus handles PUT /leads/{id}/status.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	var req statusRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Cuerpo de la petición no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Leads.UpdateStatus(ctx, id, req.Status); err != nil {
		switch err {
		case leadstore.ErrLeadNotFound:
			httpjson.Error(w, http.StatusNotFound, err.Error())
		case leadstore.ErrBadStatus:
			httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.internalError(w, "failed to update lead status", err, zap.String("lead_id", id.Hex()))
		}
		return
	}

	h.Log.Info("lead status changed",
		zap.String("lead_id", id.Hex()),
		zap.String("status", req.Status))
	httpjson.OK(w, map[string]string{"message": "Estado actualizado"})
}

type updateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=160" label:"nombre"`
	Email   *string `json:"email" validate:"omitempty,email,max=160" label:"correo"`
	Phone   *string `json:"phone" validate:"omitempty,max=30" label:"teléfono"`
	Message *string `json:"message" validate:"omitempty,max=2000" label:"mensaje"`
}

// HandleUpdate handles PATCH /leads/{id}: contact field corrections.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	upd := leadstore.LeadUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := h.Leads.Update(ctx, id, upd); err != nil {
		if err == leadstore.ErrLeadNotFound {
			httpjson.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.internalError(w, "failed to update lead", err, zap.String("lead_id", id.Hex()))
		return
	}

	l, err := h.Leads.GetByID(ctx, id)
	if err != nil {
		h.internalError(w, "failed to reload lead", err, zap.String("lead_id", id.Hex()))
		return
	}
	httpjson.OK(w, l)
}

// HandleDelete handles DELETE /leads/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Leads.Delete(ctx, id)
	if err != nil {
		h.internalError(w, "failed to delete lead", err, zap.String("lead_id", id.Hex()))
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, leadstore.ErrLeadNotFound.Error())
		return
	}
	httpjson.OK(w, map[string]string{"message": "Solicitud eliminada"})
}
