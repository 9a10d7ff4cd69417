package users

import (
	"net/http"

	brandadminstore "github.com/autoatlas-mx/autoatlas/internal/app/store/brandadmins"
	userstore "github.com/autoatlas-mx/autoatlas/internal/app/store/users"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// Handler serves the admin user panel.
type Handler struct {
	Users       *userstore.Store
	BrandAdmins *brandadminstore.Store
	Log         *zap.Logger
}

func NewHandler(users *userstore.Store, brandAdmins *brandadminstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, BrandAdmins: brandAdmins, Log: logger}
}

func (h *Handler) internalError(w http.ResponseWriter, msg string, err error, fields ...zap.Field) {
	h.Log.Error(msg, append(fields, zap.Error(err))...)
	httpjson.Error(w, http.StatusInternalServerError, "Error interno")
}
