package communities

import (
	"context"
	"net/http"

	communitystore "github.com/autoatlas-mx/autoatlas/internal/app/store/communities"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/inputval"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList handles GET /communities: largest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	communities, err := h.Communities.List(ctx)
	if err != nil {
		h.internalError(w, "failed to list communities", err)
		return
	}
	httpjson.OK(w, communities)
}

// ServeBySlug handles GET /communities/{slug}: the community with its
// posts.
func (h *Handler) ServeBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cm, err := h.Communities.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, communitystore.ErrCommunityNotFound.Error())
		return
	}

	posts, err := h.Communities.ListPosts(ctx, cm.ID)
	if err != nil {
		h.internalError(w, "failed to list community posts", err,
			zap.String("community_id", cm.ID.Hex()))
		return
	}

	httpjson.OK(w, map[string]any{
		"community": cm,
		"posts":     posts,
	})
}

type createRequest struct {
	Name        string `json:"name" validate:"required,max=160" label:"nombre"`
	Slug        string `json:"slug" validate:"omitempty,max=160" label:"slug"`
	Description string `json:"description" validate:"omitempty,max=5000" label:"descripción"`
}

// HandleCreate handles POST /communities.
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

	cm, err := h.Communities.Create(ctx, models.Community{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		if err == communitystore.ErrDuplicateSlug {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.internalError(w, "failed to create community", err, zap.String("name", req.Name))
		return
	}

	h.Log.Info("community created",
		zap.String("community_id", cm.ID.Hex()),
		zap.String("slug", cm.Slug))
	httpjson.Write(w, http.StatusCreated, cm)
}

type updateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=160" label:"nombre"`
	Slug        *string `json:"slug" validate:"omitempty,min=1,max=160" label:"slug"`
	Description *string `json:"description" validate:"omitempty,max=5000" label:"descripción"`
	MemberCount *int    `json:"member_count" validate:"omitempty,min=0" label:"miembros"`
}

// HandleUpdate handles PATCH /communities/{id}.
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

	upd := communitystore.CommunityUpdate{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		MemberCount: req.MemberCount,
	}
	if err := h.Communities.Update(ctx, id, upd); err != nil {
		switch err {
		case communitystore.ErrCommunityNotFound:
			httpjson.Error(w, http.StatusNotFound, err.Error())
		case communitystore.ErrDuplicateSlug:
			httpjson.Error(w, http.StatusConflict, err.Error())
		default:
			h.internalError(w, "failed to update community", err, zap.String("community_id", id.Hex()))
		}
		return
	}

	cm, err := h.Communities.GetByID(ctx, id)
	if err != nil {
		h.internalError(w, "failed to reload community", err, zap.String("community_id", id.Hex()))
		return
	}
	httpjson.OK(w, cm)
}

// HandleDelete handles DELETE /communities/{id}. Posts go with the
// community.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Communities.Delete(ctx, id)
	if err != nil {
		h.internalError(w, "failed to delete community", err, zap.String("community_id", id.Hex()))
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, communitystore.ErrCommunityNotFound.Error())
		return
	}

	h.Log.Info("community deleted", zap.String("community_id", id.Hex()))
	httpjson.OK(w, map[string]string{"message": "Comunidad eliminada"})
}
