package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/alice-reader-backend/internal/transport/middleware"
	"github.com/heartmarshall/alice-reader-backend/pkg/ctxutil"
)

type cacheClearer interface {
	ClearCache(ctx context.Context)
}

// AdminHandler serves operator endpoints.
type AdminHandler struct {
	cache cacheClearer
	log   *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(cache cacheClearer, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		cache: cache,
		log:   logger.With("handler", "admin"),
	}
}

// ClearDefinitionCache drops every cached definition.
// DELETE /api/v1/admin/definitions/cache
func (h *AdminHandler) ClearDefinitionCache(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	h.cache.ClearCache(r.Context())

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	h.log.InfoContext(r.Context(), "definition cache cleared by operator", slog.String("user_id", userID.String()))

	w.WriteHeader(http.StatusNoContent)
}
