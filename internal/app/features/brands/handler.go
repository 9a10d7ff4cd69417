package brands

import (
	"net/http"

	brandstore "github.com/autoatlas-mx/autoatlas/internal/app/store/brands"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// Handler serves the brand catalog panel and its public read side.
type Handler struct {
	Brands *brandstore.Store
	Log    *zap.Logger
}

func NewHandler(brands *brandstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Brands: brands, Log: logger}
}

func (h *Handler) internalError(w http.ResponseWriter, msg string, err error, fields ...zap.Field) {
	h.Log.Error(msg, append(fields, zap.Error(err))...)
	httpjson.Error(w, http.StatusInternalServerError, "Error interno")
}
