package reviews

import (
	"net/http"

	commentstore "github.com/autoatlas-mx/autoatlas/internal/app/store/comments"
	reviewstore "github.com/autoatlas-mx/autoatlas/internal/app/store/reviews"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// Handler serves review posts and their comment threads.
type Handler struct {
	Reviews  *reviewstore.Store
	Comments *commentstore.Store
	Log      *zap.Logger
}

func NewHandler(reviews *reviewstore.Store, comments *commentstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Reviews: reviews, Comments: comments, Log: logger}
}

func (h *Handler) internalError(w http.ResponseWriter, msg string, err error, fields ...zap.Field) {
	h.Log.Error(msg, append(fields, zap.Error(err))...)
	httpjson.Error(w, http.StatusInternalServerError, "Error interno")
}
