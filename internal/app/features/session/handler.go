package session

import (
	"net/http"

	"github.com/autoatlas-mx/autoatlas/internal/app/system/auth"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// Handler serves the current-session endpoints.
type Handler struct {
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{SessionMgr: sessionMgr, Log: logger}
}

type sessionResponse struct {
	SignedIn bool              `json:"signed_in"`
	User     *auth.SessionUser `json:"user,omitempty"`
}

// ServeSession handles GET /session. Visitors get signed_in=false rather
// than a 401, so the client can render the anonymous state.
func (h *Handler) ServeSession(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.OK(w, sessionResponse{SignedIn: false})
		return
	}
	httpjson.OK(w, sessionResponse{SignedIn: true, User: u})
}

// HandleLogout handles POST /session/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("failed to clear session", zap.Error(err))
	}
	httpjson.OK(w, map[string]string{"message": "Sesión cerrada"})
}
