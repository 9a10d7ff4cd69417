package profile

import (
	"context"
	"net/http"

	userstore "github.com/autoatlas-mx/autoatlas/internal/app/store/users"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/authz"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/inputval"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the signed-in user's own profile.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// ServeProfile handles GET /profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Necesitas iniciar sesión")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.Log.Error("failed to load profile", zap.Error(err),
			zap.String("user_id", userID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error interno")
		return
	}
	httpjson.OK(w, u)
}

// updateRequest carries the PATCH body. Absent fields stay nil and leave
// the stored values untouched.
type updateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=120" label:"nombre"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=500" label:"avatar"`
	Phone     *string `json:"phone" validate:"omitempty,max=30" label:"teléfono"`
	City      *string `json:"city" validate:"omitempty,max=120" label:"ciudad"`
	BirthYear *int    `json:"birth_year" validate:"omitempty,min=1900,max=2026" label:"año de nacimiento"`
}

// HandleUpdate handles PATCH /profile. Only the fields present in the
// body change; an empty body is accepted and changes nothing.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Necesitas iniciar sesión")
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

	upd := userstore.ProfileUpdate{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Phone:     req.Phone,
		City:      req.City,
		BirthYear: req.BirthYear,
	}
	if err := h.Users.UpdateProfile(ctx, userID, upd); err != nil {
		if err == userstore.ErrUserNotFound {
			httpjson.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.Log.Error("failed to update profile", zap.Error(err),
			zap.String("user_id", userID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error interno")
		return
	}

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.Log.Error("failed to reload profile", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error interno")
		return
	}
	httpjson.OK(w, u)
}
