package reviews

import (
	"context"
	"net/http"

	reviewstore "github.com/autoatlas-mx/autoatlas/internal/app/store/reviews"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/authz"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/inputval"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList handles GET /reviews with an optional ?car_id= filter.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.Reviews.List(ctx, r.URL.Query().Get("car_id"))
	if err != nil {
		h.internalError(w, "failed to list reviews", err)
		return
	}
	httpjson.OK(w, posts)
}

// ServeView handles GET /reviews/{id}: the post with its comment thread.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, reviewstore.ErrReviewNotFound.Error())
		return
	}

	comments, err := h.Comments.ListByPost(ctx, id)
	if err != nil {
		h.internalError(w, "failed to list comments", err, zap.String("post_id", id.Hex()))
		return
	}

	httpjson.OK(w, map[string]any{
		"post":     p,
		"comments": comments,
	})
}

type createRequest struct {
	Title  string `json:"title" validate:"required,max=200" label:"título"`
	Body   string `json:"body" validate:"required,max=10000" label:"contenido"`
	CarID  string `json:"car_id" validate:"omitempty,max=40" label:"vehículo"`
	Rating int    `json:"rating" validate:"required,min=1,max=5" label:"calificación"`
}

// HandleCreate handles POST /reviews. Verified users and above only.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, name, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Necesitas iniciar sesión")
		return
	}
	if !authz.IsVerified(r) {
		httpjson.Error(w, http.StatusForbidden,
			"Publicar reseñas requiere una cuenta verificada")
		return
	}

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

	p, err := h.Reviews.Create(ctx, models.ReviewPost{
		AuthorID:   userID,
		AuthorName: name,
		Title:      req.Title,
		Body:       req.Body,
		CarID:      req.CarID,
		Rating:     req.Rating,
	})
	if err != nil {
		if err == reviewstore.ErrBadRating {
			httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.internalError(w, "failed to create review", err)
		return
	}

	h.Log.Info("review created",
		zap.String("post_id", p.ID.Hex()),
		zap.String("author_id", userID.Hex()))
	httpjson.Write(w, http.StatusCreated, p)
}

type updateRequest struct {
	Title  *string `json:"title" validate:"omitempty,min=1,max=200" label:"título"`
	Body   *string `json:"body" validate:"omitempty,min=1,max=10000" label:"contenido"`
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=5" label:"calificación"`
}

// loadOwned fetches the review and enforces author-or-admin, writing the
// error response itself on failure.
func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request, ctx context.Context) *models.ReviewPost {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Necesitas iniciar sesión")
		return nil
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return nil
	}

	p, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, reviewstore.ErrReviewNotFound.Error())
		return nil
	}

	if p.AuthorID != userID && !authz.IsAdmin(r) {
		httpjson.Error(w, http.StatusForbidden, "Solo el autor puede modificar esta reseña")
		return nil
	}
	return p
}

// HandleUpdate handles PATCH /reviews/{id}. Author or admin.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p := h.loadOwned(w, r, ctx)
	if p == nil {
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

	upd := reviewstore.ReviewUpdate{
		Title:  req.Title,
		Body:   req.Body,
		Rating: req.Rating,
	}
	if err := h.Reviews.Update(ctx, p.ID, upd); err != nil {
		switch err {
		case reviewstore.ErrReviewNotFound:
			httpjson.Error(w, http.StatusNotFound, err.Error())
		case reviewstore.ErrBadRating:
			httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.internalError(w, "failed to update review", err, zap.String("post_id", p.ID.Hex()))
		}
		return
	}

	updated, err := h.Reviews.GetByID(ctx, p.ID)
	if err != nil {
		h.internalError(w, "failed to reload review", err, zap.String("post_id", p.ID.Hex()))
		return
	}
	httpjson.OK(w, updated)
}

// HandleDelete handles DELETE /reviews/{id}. Author or admin; the
// comment thread goes with the post.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p := h.loadOwned(w, r, ctx)
	if p == nil {
		return
	}

	if _, err := h.Reviews.Delete(ctx, p.ID); err != nil {
		h.internalError(w, "failed to delete review", err, zap.String("post_id", p.ID.Hex()))
		return
	}

	h.Log.Info("review deleted", zap.String("post_id", p.ID.Hex()))
	httpjson.OK(w, map[string]string{"message": "Reseña eliminada"})
}
