package communities

import (
	"context"
	"net/http"

	communitystore "github.com/autoatlas-mx/autoatlas/internal/app/store/communities"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/authz"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/inputval"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type postRequest struct {
	Title string `json:"title" validate:"required,max=200" label:"título"`
	Body  string `json:"body" validate:"required,max=10000" label:"contenido"`
}

// HandleCreatePost handles POST /communities/{id}/posts. Any signed-in
// user may post.
func (h *Handler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	_, name, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Necesitas iniciar sesión")
		return
	}

	communityID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	var req postRequest
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

	p, err := h.Communities.CreatePost(ctx, models.CommunityPost{
		CommunityID: communityID,
		AuthorID:    userID,
		AuthorName:  name,
		Title:       req.Title,
		Body:        req.Body,
	})
	if err != nil {
		if err == communitystore.ErrCommunityNotFound {
			httpjson.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.internalError(w, "failed to create community post", err,
			zap.String("community_id", communityID.Hex()))
		return
	}

	httpjson.Write(w, http.StatusCreated, p)
}

// HandleDeletePost handles DELETE /communities/{id}/posts/{postID}.
// Post author or admin.
func (h *Handler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Necesitas iniciar sesión")
		return
	}

	communityID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	target, err := h.Communities.GetPost(ctx, postID)
	if err != nil || target.CommunityID != communityID {
		httpjson.Error(w, http.StatusNotFound, communitystore.ErrPostNotFound.Error())
		return
	}
	if target.AuthorID != userID && !authz.IsAdmin(r) {
		httpjson.Error(w, http.StatusForbidden, "Solo el autor puede eliminar esta publicación")
		return
	}

	if _, err := h.Communities.DeletePost(ctx, postID); err != nil {
		h.internalError(w, "failed to delete community post", err,
			zap.String("post_id", postID.Hex()))
		return
	}
	httpjson.OK(w, map[string]string{"message": "Publicación eliminada"})
}
