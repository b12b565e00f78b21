package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/alice-reader-backend/internal/transport/middleware"
	"github.com/heartmarshall/alice-reader-backend/pkg/ctxutil"
)

// AuthHandler reports the identity resolved from the caller's token.
// Sign-in itself happens against Supabase.
type AuthHandler struct {
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(logger *slog.Logger) *AuthHandler {
	return &AuthHandler{log: logger.With("handler", "auth")}
}

type meResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Me returns the caller's user ID and role.
// GET /api/v1/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.RequireUser(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		ID:   userID.String(),
		Role: ctxutil.UserRoleFromCtx(r.Context()).String(),
	})
}
