// internal/app/features/catalogapi/handler.go
package catalogapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/inputval"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"github.com/autoatlas-mx/autoatlas/internal/catalog"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the read-only vehicle catalog from the relational
// backend.
type Handler struct {
	Catalog *catalog.Service
	Log     *zap.Logger
}

func NewHandler(svc *catalog.Service, logger *zap.Logger) *Handler {
	return &Handler{Catalog: svc, Log: logger}
}

func (h *Handler) internalError(w http.ResponseWriter, msg string, err error) {
	h.Log.Error(msg, zap.Error(err))
	httpjson.Error(w, http.StatusInternalServerError, "Error interno")
}

// ServeBrands handles GET /catalog/brands.
func (h *Handler) ServeBrands(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	brands, err := h.Catalog.FetchBrands(ctx)
	if err != nil {
		h.internalError(w, "failed to fetch catalog brands", err)
		return
	}
	httpjson.OK(w, brands)
}

// ServeModels handles GET /catalog/models with an optional ?brand_id=.
func (h *Handler) ServeModels(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	brandID, ok := queryUint(w, r, "brand_id")
	if !ok {
		return
	}

	models, err := h.Catalog.FetchModels(ctx, brandID)
	if err != nil {
		h.internalError(w, "failed to fetch catalog models", err)
		return
	}
	httpjson.OK(w, models)
}

// ServeCars handles GET /catalog/cars with optional ?brand_id=,
// ?model_id= and ?max_price= filters.
func (h *Handler) ServeCars(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	brandID, ok := queryUint(w, r, "brand_id")
	if !ok {
		return
	}
	modelID, ok := queryUint(w, r, "model_id")
	if !ok {
		return
	}

	var maxPrice float64
	if s := r.URL.Query().Get("max_price"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			httpjson.Error(w, http.StatusBadRequest, "Precio máximo no válido")
			return
		}
		maxPrice = v
	}

	cars, err := h.Catalog.FetchCars(ctx, catalog.CarFilter{
		BrandID:  brandID,
		ModelID:  modelID,
		MaxPrice: maxPrice,
	})
	if err != nil {
		h.internalError(w, "failed to fetch catalog cars", err)
		return
	}
	httpjson.OK(w, cars)
}

// ServeCar handles GET /catalog/cars/{id}.
func (h *Handler) ServeCar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	car, err := h.Catalog.FetchCarByID(ctx, uint(id))
	if err != nil {
		h.internalError(w, "failed to fetch catalog car", err)
		return
	}
	if car == nil {
		httpjson.Error(w, http.StatusNotFound, "Vehículo no encontrado")
		return
	}
	httpjson.OK(w, car)
}

// ServeReviews handles GET /catalog/reviews: editorial reviews, newest
// first.
func (h *Handler) ServeReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reviews, err := h.Catalog.FetchReviews(ctx)
	if err != nil {
		h.internalError(w, "failed to fetch catalog reviews", err)
		return
	}
	httpjson.OK(w, reviews)
}

// ServeCommunities handles GET /catalog/communities, largest first.
func (h *Handler) ServeCommunities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	communities, err := h.Catalog.FetchCommunities(ctx)
	if err != nil {
		h.internalError(w, "failed to fetch catalog communities", err)
		return
	}
	httpjson.OK(w, communities)
}

// ServeEvents handles GET /catalog/events ascending by date.
func (h *Handler) ServeEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.Catalog.FetchEvents(ctx)
	if err != nil {
		h.internalError(w, "failed to fetch catalog events", err)
		return
	}
	httpjson.OK(w, events)
}

type leadRequest struct {
	TrimID  uint   `json:"trim_id" validate:"omitempty" label:"vehículo"`
	Name    string `json:"name" validate:"required,max=160" label:"nombre"`
	Email   string `json:"email" validate:"required,email" label:"correo"`
	Phone   string `json:"phone" validate:"omitempty,max=40" label:"teléfono"`
	Message string `json:"message" validate:"omitempty,max=5000" label:"mensaje"`
}

// HandleSubmitLead handles POST /catalog/leads: a direct insert into the
// dealer-side lead table, returning the stored row.
func (h *Handler) HandleSubmitLead(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
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

	lead, err := h.Catalog.SubmitLead(ctx, catalog.CatalogLead{
		TrimID:  req.TrimID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		h.internalError(w, "failed to submit catalog lead", err)
		return
	}

	h.Log.Info("catalog lead submitted", zap.Uint("lead_id", lead.ID))
	httpjson.Write(w, http.StatusCreated, lead)
}

// queryUint reads an optional uint query parameter, writing a 400 and
// returning ok=false when the value is present but malformed.
func queryUint(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Parámetro "+name+" no válido")
		return 0, false
	}
	return uint(v), true
}
