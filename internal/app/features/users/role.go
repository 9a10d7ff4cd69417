package users

import (
	"context"
	"net/http"

	userstore "github.com/autoatlas-mx/autoatlas/internal/app/store/users"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/normalize"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type roleRequest struct {
	Role string `json:"role" validate:"required" label:"rol"`
}

// HandleSetRole handles PUT /users/{id}/role. Brand-admin promotion goes
// through the delegation endpoint instead, because it needs a brand;
// this endpoint rejects it. Demoting a brand admin here removes the
// delegation record too.
func (h *Handler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	var req roleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Cuerpo de la petición no válido")
		return
	}

	role := normalize.Role(req.Role)
	if !models.ValidRole(role) {
		httpjson.Error(w, http.StatusUnprocessableEntity, "Rol no válido")
		return
	}
	if role == models.RoleBrandAdmin {
		httpjson.Error(w, http.StatusUnprocessableEntity,
			"Usa la asignación de marcas para nombrar administradores de marca")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.SetRole(ctx, id, role); err != nil {
		if err == userstore.ErrUserNotFound {
			httpjson.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.internalError(w, "failed to set role", err,
			zap.String("user_id", id.Hex()), zap.String("role", role))
		return
	}

	// A user leaving brand_admin loses their delegation record.
	if err := h.BrandAdmins.DeleteByUser(ctx, id); err != nil {
		h.internalError(w, "failed to clear delegation after role change", err,
			zap.String("user_id", id.Hex()))
		return
	}

	h.Log.Info("role changed",
		zap.String("user_id", id.Hex()),
		zap.String("role", role))
	httpjson.OK(w, map[string]string{"message": "Rol actualizado", "role": role})
}
