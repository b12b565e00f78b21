package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
	"github.com/heartmarshall/alice-reader-backend/pkg/ctxutil"
)

// RequireAdmin returns domain.ErrForbidden if the caller holds no operator
// role, and domain.ErrUnauthorized for anonymous callers.
// Use in REST handlers, not as HTTP middleware.
func RequireAdmin(ctx context.Context) error {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}

// RequireUser returns the authenticated caller's ID or domain.ErrUnauthorized.
func RequireUser(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}
