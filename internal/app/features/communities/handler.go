package communities

import (
	"net/http"

	communitystore "github.com/autoatlas-mx/autoatlas/internal/app/store/communities"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// Handler serves communities and their posts.
type Handler struct {
	Communities *communitystore.Store
	Log         *zap.Logger
}

func NewHandler(communities *communitystore.Store, logger *zap.Logger) *Handler {
	return &Handler{Communities: communities, Log: logger}
}

func (h *Handler) internalError(w http.ResponseWriter, msg string, err error, fields ...zap.Field) {
	h.Log.Error(msg, append(fields, zap.Error(err))...)
	httpjson.Error(w, http.StatusInternalServerError, "Error interno")
}
