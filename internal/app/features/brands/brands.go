package brands

import (
	"context"
	"net/http"

	brandstore "github.com/autoatlas-mx/autoatlas/internal/app/store/brands"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/inputval"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServePublicList handles GET /brands: only active brands.
func (h *Handler) ServePublicList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	brands, err := h.Brands.List(ctx, true)
	if err != nil {
		h.internalError(w, "failed to list brands", err)
		return
	}
	httpjson.OK(w, brands)
}

// ServeBySlug handles GET /brands/{slug}.
func (h *Handler) ServeBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	b, err := h.Brands.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, brandstore.ErrBrandNotFound.Error())
		return
	}
	httpjson.OK(w, b)
}

// ServeAdminList handles GET /brands/all: every brand, inactive included.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	brands, err := h.Brands.List(ctx, false)
	if err != nil {
		h.internalError(w, "failed to list brands", err)
		return
	}
	httpjson.OK(w, brands)
}

type createRequest struct {
	Name    string `json:"name" validate:"required,max=120" label:"nombre"`
	Slug    string `json:"slug" validate:"omitempty,max=120" label:"slug"`
	LogoURL string `json:"logo_url" validate:"omitempty,url,max=500" label:"logotipo"`
	Country string `json:"country" validate:"omitempty,max=80" label:"país"`
	Active  bool   `json:"active"`
}

// HandleCreate handles POST /brands.
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	b, err := h.Brands.Create(ctx, models.Brand{
		Name:    req.Name,
		Slug:    req.Slug,
		LogoURL: req.LogoURL,
		Country: req.Country,
		Active:  req.Active,
	})
	if err != nil {
		if err == brandstore.ErrDuplicateSlug {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.internalError(w, "failed to create brand", err, zap.String("name", req.Name))
		return
	}

	h.Log.Info("brand created",
		zap.String("brand_id", b.ID.Hex()),
		zap.String("slug", b.Slug))
	httpjson.Write(w, http.StatusCreated, b)
}

type updateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=120" label:"nombre"`
	Slug    *string `json:"slug" validate:"omitempty,min=1,max=120" label:"slug"`
	LogoURL *string `json:"logo_url" validate:"omitempty,url,max=500" label:"logotipo"`
	Country *string `json:"country" validate:"omitempty,max=80" label:"país"`
	Active  *bool   `json:"active"`
}

// HandleUpdate handles PATCH /brands/{id}.
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

	upd := brandstore.BrandUpdate{
		Name:    req.Name,
		Slug:    req.Slug,
		LogoURL: req.LogoURL,
		Country: req.Country,
		Active:  req.Active,
	}
	if err := h.Brands.Update(ctx, id, upd); err != nil {
		switch err {
		case brandstore.ErrBrandNotFound:
			httpjson.Error(w, http.StatusNotFound, err.Error())
		case brandstore.ErrDuplicateSlug:
			httpjson.Error(w, http.StatusConflict, err.Error())
		default:
			h.internalError(w, "failed to update brand", err, zap.String("brand_id", id.Hex()))
		}
		return
	}

	b, err := h.Brands.GetByID(ctx, id)
	if err != nil {
		h.internalError(w, "failed to reload brand", err, zap.String("brand_id", id.Hex()))
		return
	}
	httpjson.OK(w, b)
}

// HandleDelete handles DELETE /brands/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Brands.Delete(ctx, id)
	if err != nil {
		h.internalError(w, "failed to delete brand", err, zap.String("brand_id", id.Hex()))
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, brandstore.ErrBrandNotFound.Error())
		return
	}

	h.Log.Info("brand deleted", zap.String("brand_id", id.Hex()))
	httpjson.OK(w, map[string]string{"message": "Marca eliminada"})
}
