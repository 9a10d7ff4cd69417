package banners

import (
	"context"
	"net/http"

	bannerstore "github.com/autoatlas-mx/autoatlas/internal/app/store/banners"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/inputval"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the promotional banner panel and its public read side.
type Handler struct {
	Banners *bannerstore.Store
	Log     *zap.Logger
}

func NewHandler(banners *bannerstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Banners: banners, Log: logger}
}

func (h *Handler) internalError(w http.ResponseWriter, msg string, err error, fields ...zap.Field) {
	h.Log.Error(msg, append(fields, zap.Error(err))...)
	httpjson.Error(w, http.StatusInternalServerError, "Error interno")
}

// ServePublicList handles GET /banners: active banners in display order.
func (h *Handler) ServePublicList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	banners, err := h.Banners.List(ctx, true)
	if err != nil {
		h.internalError(w, "failed to list banners", err)
		return
	}
	httpjson.OK(w, banners)
}

// ServeAdminList handles GET /banners/all.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	banners, err := h.Banners.List(ctx, false)
	if err != nil {
		h.internalError(w, "failed to list banners", err)
		return
	}
	httpjson.OK(w, banners)
}

type createRequest struct {
	Title    string `json:"title" validate:"required,max=200" label:"título"`
	ImageURL string `json:"image_url" validate:"required,url,max=500" label:"imagen"`
	LinkURL  string `json:"link_url" validate:"omitempty,url,max=500" label:"enlace"`
	Active   bool   `json:"active"`
}

// HandleCreate handles POST /banners. New banners land at the end of the
// display order.
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

	b, err := h.Banners.Create(ctx, models.Banner{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Active:   req.Active,
	})
	if err != nil {
		h.internalError(w, "failed to create banner", err, zap.String("title", req.Title))
		return
	}

	h.Log.Info("banner created", zap.String("banner_id", b.ID.Hex()))
	httpjson.Write(w, http.StatusCreated, b)
}

type updateRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=200" label:"título"`
	ImageURL *string `json:"image_url" validate:"omitempty,url,max=500" label:"imagen"`
	LinkURL  *string `json:"link_url" validate:"omitempty,url,max=500" label:"enlace"`
	Active   *bool   `json:"active"`
}

// HandleUpdate handles PATCH /banners/{id}.
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

	upd := bannerstore.BannerUpdate{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Active:   req.Active,
	}
	if err := h.Banners.Update(ctx, id, upd); err != nil {
		if err == bannerstore.ErrBannerNotFound {
			httpjson.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.internalError(w, "failed to update banner", err, zap.String("banner_id", id.Hex()))
		return
	}

	b, err := h.Banners.GetByID(ctx, id)
	if err != nil {
		h.internalError(w, "failed to reload banner", err, zap.String("banner_id", id.Hex()))
		return
	}
	httpjson.OK(w, b)
}

// HandleDelete handles DELETE /banners/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Banners.Delete(ctx, id)
	if err != nil {
		h.internalError(w, "failed to delete banner", err, zap.String("banner_id", id.Hex()))
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, bannerstore.ErrBannerNotFound.Error())
		return
	}
	httpjson.OK(w, map[string]string{"message": "Banner eliminado"})
}

type reorderRequest struct {
	IDs []string `json:"ids" validate:"required,min=1" label:"ids"`
}

// HandleReorder handles PUT /banners/reorder. Each banner's order becomes
// its position in the submitted list; resubmitting the same list is a
// no-op.
func (h *Handler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Cuerpo de la petición no válido")
		return
	}
	if res := inputval.Validate(req); res.HasErrors {
		httpjson.Error(w, http.StatusUnprocessableEntity, res.First)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(req.IDs))
	seen := make(map[primitive.ObjectID]bool, len(req.IDs))
	for _, s := range req.IDs {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
			return
		}
		if seen[id] {
			httpjson.Error(w, http.StatusBadRequest, "Identificador repetido")
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Banners.Reorder(ctx, ids); err != nil {
		if err == bannerstore.ErrBannerNotFound {
			httpjson.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.internalError(w, "failed to reorder banners", err)
		return
	}

	banners, err := h.Banners.List(ctx, false)
	if err != nil {
		h.internalError(w, "failed to reload banners", err)
		return
	}
	httpjson.OK(w, banners)
}
