package users

import (
	"context"
	"net/http"

	userstore "github.com/autoatlas-mx/autoatlas/internal/app/store/users"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList handles GET /users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.internalError(w, "failed to list users", err)
		return
	}
	httpjson.OK(w, users)
}

// ServeView handles GET /users/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, userstore.ErrUserNotFound.Error())
		return
	}
	httpjson.OK(w, u)
}

// HandleDelete handles DELETE /users/{id}. Any brand delegation the user
// holds is removed alongside the record.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.BrandAdmins.DeleteByUser(ctx, id); err != nil {
		h.internalError(w, "failed to remove delegation for deleted user", err,
			zap.String("user_id", id.Hex()))
		return
	}

	n, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.internalError(w, "failed to delete user", err,
			zap.String("user_id", id.Hex()))
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, userstore.ErrUserNotFound.Error())
		return
	}

	h.Log.Info("user deleted", zap.String("user_id", id.Hex()))
	httpjson.OK(w, map[string]string{"message": "Usuario eliminado"})
}
