package brandadmins

import (
	"context"
	"net/http"

	brandadminstore "github.com/autoatlas-mx/autoatlas/internal/app/store/brandadmins"
	brandstore "github.com/autoatlas-mx/autoatlas/internal/app/store/brands"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/authz"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/inputval"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves brand delegation: which user administers which brand.
type Handler struct {
	BrandAdmins *brandadminstore.Store
	Brands      *brandstore.Store
	Log         *zap.Logger
}

func NewHandler(brandAdmins *brandadminstore.Store, brands *brandstore.Store, logger *zap.Logger) *Handler {
	return &Handler{BrandAdmins: brandAdmins, Brands: brands, Log: logger}
}

// assignRequest is the POST body. OnConflict chooses what happens when
// the user already administers another brand: "reject" (default) fails,
// "overwrite" repoints the delegation.
type assignRequest struct {
	Email      string `json:"email" validate:"required,email" label:"correo"`
	BrandID    string `json:"brand_id" validate:"required" label:"marca"`
	OnConflict string `json:"on_conflict" validate:"omitempty,oneof=reject overwrite" label:"on_conflict"`
}

// HandleAssign handles POST /brand-admins.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	_, _, adminID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Necesitas iniciar sesión")
		return
	}

	var req assignRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Cuerpo de la petición no válido")
		return
	}
	if res := inputval.Validate(req); res.HasErrors {
		httpjson.Error(w, http.StatusUnprocessableEntity, res.First)
		return
	}

	brandID, err := primitive.ObjectIDFromHex(req.BrandID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador de marca no válido")
		return
	}

	mode := brandadminstore.OnConflictReject
	if req.OnConflict == "overwrite" {
		mode = brandadminstore.OnConflictOverwrite
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Brands.GetByID(ctx, brandID); err != nil {
		httpjson.Error(w, http.StatusNotFound, brandstore.ErrBrandNotFound.Error())
		return
	}

	user, err := h.BrandAdmins.Assign(ctx, req.Email, brandID, mode, adminID)
	switch err {
	case nil:
	case brandadminstore.ErrUserNotFound:
		httpjson.Error(w, http.StatusNotFound, err.Error())
		return
	case brandadminstore.ErrAlreadyDelegated:
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	default:
		h.Log.Error("failed to assign brand admin", zap.Error(err),
			zap.String("email", req.Email),
			zap.String("brand_id", brandID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error interno")
		return
	}

	h.Log.Info("brand admin assigned",
		zap.String("user_id", user.ID.Hex()),
		zap.String("brand_id", brandID.Hex()),
		zap.String("by", adminID.Hex()))

	httpjson.Write(w, http.StatusCreated, map[string]string{
		"message": "Administrador de marca asignado",
		"user_id": user.ID.Hex(),
	})
}

// ServeList handles GET /brand-admins.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	admins, err := h.BrandAdmins.List(ctx)
	if err != nil {
		h.Log.Error("failed to list brand admins", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error interno")
		return
	}
	httpjson.OK(w, admins)
}

// HandleRemove handles DELETE /brand-admins/{userID}. The delegation is
// removed and the user drops back to the default role.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Identificador no válido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.BrandAdmins.Remove(ctx, userID); err != nil {
		if err == brandadminstore.ErrUserNotFound {
			httpjson.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.Log.Error("failed to remove brand admin", zap.Error(err),
			zap.String("user_id", userID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error interno")
		return
	}

	h.Log.Info("brand admin removed", zap.String("user_id", userID.Hex()))
	httpjson.OK(w, map[string]string{"message": "Delegación eliminada"})
}

// ServeMine handles GET /brand-admins/me: the signed-in brand admin's
// own brand.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Necesitas iniciar sesión")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ba, err := h.BrandAdmins.GetByUserID(ctx, userID)
	if err != nil {
		h.Log.Error("failed to load delegation", zap.Error(err),
			zap.String("user_id", userID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error interno")
		return
	}
	if ba == nil {
		httpjson.Error(w, http.StatusNotFound, "No administras ninguna marca")
		return
	}

	brand, err := h.Brands.GetByID(ctx, ba.BrandID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, brandstore.ErrBrandNotFound.Error())
		return
	}
	httpjson.OK(w, brand)
}
