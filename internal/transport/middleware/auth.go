package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/heartmarshall/alice-reader-backend/internal/auth"
	"github.com/heartmarshall/alice-reader-backend/pkg/ctxutil"
)

const unauthorizedBody = `{"error":"unauthorized"}` + "\n"

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Identity, error)
}

// Auth attaches the caller's identity (user id and role) to the request
// context. Requests without a bearer token pass through as anonymous, so
// definition lookups work signed out. A token that fails verification is
// rejected with 401 rather than downgraded to anonymous.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			id, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(unauthorizedBody))
				return
			}
			if rl := requestLogFromCtx(r.Context()); rl != nil {
				rl.userID = id.UserID
			}
			ctx := ctxutil.WithUserID(r.Context(), id.UserID)
			ctx = ctxutil.WithUserRole(ctx, id.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
