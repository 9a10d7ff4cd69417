package health

import (
	"context"
	"net/http"

	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Mongo   *mongo.Client
	Catalog *gorm.DB
	Log     *zap.Logger
}

func NewHandler(client *mongo.Client, catalog *gorm.DB, logger *zap.Logger) *Handler {
	return &Handler{Mongo: client, Catalog: catalog, Log: logger}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Document string `json:"document_store"`
	Catalog  string `json:"catalog"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health. Both backends are pinged; a failure on
// either returns 503.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp := healthResponse{
		Status:   "ok",
		Document: "connected",
		Catalog:  "connected",
	}

	if err := h.Mongo.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		resp.Status = "error"
		resp.Document = "disconnected"
		resp.Error = err.Error()
		httpjson.Write(w, http.StatusServiceUnavailable, resp)
		return
	}

	sqlDB, err := h.Catalog.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.Log.Error("health-check: catalog ping failed", zap.Error(err))
		resp.Status = "error"
		resp.Catalog = "disconnected"
		resp.Error = err.Error()
		httpjson.Write(w, http.StatusServiceUnavailable, resp)
		return
	}

	httpjson.Write(w, http.StatusOK, resp)
}
