package reviews

import (
	"context"
	"net/http"

	commentstore "github.com/autoatlas-mx/autoatlas/internal/app/store/comments"
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

type commentRequest struct {
	Body     string `json:"body" validate:"required,max=5000" label:"contenido"`
	ParentID string `json:"parent_id" validate:"omitempty" label:"respuesta a"`
}

// HandleCreateComment handles POST /reviews/{id}/comments. Any signed-in
// user may comment.
func (h *Handler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	_, name, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Necesitas iniciar sesión")
		return
	}

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	var req commentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Cuerpo de la petición no válido")
		return
	}
	if res := inputval.Validate(req); res.HasErrors {
		httpjson.Error(w, http.StatusUnprocessableEntity, res.First)
		return
	}

	var parentID *primitive.ObjectID
	if req.ParentID != "" {
		pid, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
			return
		}
		parentID = &pid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Reviews.GetByID(ctx, postID); err != nil {
		httpjson.Error(w, http.StatusNotFound, reviewstore.ErrReviewNotFound.Error())
		return
	}

	cm, err := h.Comments.Create(ctx, models.Comment{
		PostID:     postID,
		AuthorID:   userID,
		AuthorName: name,
		ParentID:   parentID,
		Body:       req.Body,
	})
	if err != nil {
		if err == commentstore.ErrParentNotFound {
			httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.internalError(w, "failed to create comment", err, zap.String("post_id", postID.Hex()))
		return
	}

	httpjson.Write(w, http.StatusCreated, cm)
}

// HandleDeleteComment handles DELETE /reviews/{id}/comments/{commentID}.
// Comment author or admin.
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Necesitas iniciar sesión")
		return
	}

	commentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "commentID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cm, err := h.Comments.GetByID(ctx, commentID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, commentstore.ErrCommentNotFound.Error())
		return
	}
	if cm.AuthorID != userID && !authz.IsAdmin(r) {
		httpjson.Error(w, http.StatusForbidden, "Solo el autor puede eliminar este comentario")
		return
	}

	if _, err := h.Comments.Delete(ctx, commentID); err != nil {
		h.internalError(w, "failed to delete comment", err, zap.String("comment_id", commentID.Hex()))
		return
	}
	httpjson.OK(w, map[string]string{"message": "Comentario eliminado"})
}
