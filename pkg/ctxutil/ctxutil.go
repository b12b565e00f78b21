// Package ctxutil carries per-request identity and tracing values through
// context.Context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

type (
	userIDKey    struct{}
	userRoleKey  struct{}
	requestIDKey struct{}
)

// WithUserID stores the verified reader id.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFromCtx returns the reader id. ok is false for anonymous requests
// and for uuid.Nil.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithUserRole stores the caller's role.
func WithUserRole(ctx context.Context, role domain.UserRole) context.Context {
	return context.WithValue(ctx, userRoleKey{}, role)
}

// UserRoleFromCtx returns the caller's role. Missing or unknown roles are
// treated as anonymous.
func UserRoleFromCtx(ctx context.Context) domain.UserRole {
	role, ok := ctx.Value(userRoleKey{}).(domain.UserRole)
	if !ok || !role.IsValid() {
		return domain.UserRoleAnon
	}
	return role
}

// IsAdminCtx reports whether the caller may use operator endpoints.
func IsAdminCtx(ctx context.Context) bool {
	return UserRoleFromCtx(ctx).IsAdmin()
}

// WithRequestID stores the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx returns the request id, or "" when absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
