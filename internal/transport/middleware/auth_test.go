package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/alice-reader-backend/internal/auth"
	"github.com/heartmarshall/alice-reader-backend/internal/domain"
	"github.com/heartmarshall/alice-reader-backend/pkg/ctxutil"
)

//go:generate moq -out token_validator_mock_test.go -pkg middleware . tokenValidator

func TestAuth(t *testing.T) {
	reader, admin := uuid.New(), uuid.New()

	validator := &tokenValidatorMock{
		ValidateTokenFunc: func(_ context.Context, token string) (auth.Identity, error) {
			switch token {
			case "reader-token":
				return auth.Identity{UserID: reader, Role: domain.UserRoleAuthenticated}, nil
			case "admin-token":
				return auth.Identity{UserID: admin, Role: domain.UserRoleAdmin}, nil
			}
			return auth.Identity{}, errors.New("signature is invalid")
		},
	}

	tests := []struct {
		name          string
		header        string
		wantCode      int
		wantUser      uuid.UUID
		wantRole      domain.UserRole
		wantValidated bool
	}{
		{name: "no header is anonymous", wantCode: http.StatusOK, wantRole: domain.UserRoleAnon},
		{name: "basic auth is anonymous", header: "Basic dXNlcjpwYXNz", wantCode: http.StatusOK, wantRole: domain.UserRoleAnon},
		{name: "empty bearer is anonymous", header: "Bearer ", wantCode: http.StatusOK, wantRole: domain.UserRoleAnon},
		{name: "reader token", header: "Bearer reader-token", wantCode: http.StatusOK, wantUser: reader, wantRole: domain.UserRoleAuthenticated, wantValidated: true},
		{name: "admin token", header: "bearer admin-token", wantCode: http.StatusOK, wantUser: admin, wantRole: domain.UserRoleAdmin, wantValidated: true},
		{name: "invalid token rejected", header: "Bearer forged", wantCode: http.StatusUnauthorized, wantValidated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(validator.ValidateTokenCalls())

			var (
				called  bool
				gotUser uuid.UUID
				gotRole domain.UserRole
				hasUser bool
			)
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUser, hasUser = ctxutil.UserIDFromCtx(r.Context())
				gotRole = ctxutil.UserRoleFromCtx(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/vocabulary", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(validator)(handler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantValidated, len(validator.ValidateTokenCalls()) > before)

			if tt.wantCode != http.StatusOK {
				assert.False(t, called, "handler must not run for a rejected token")
				assert.Equal(t, `Bearer error="invalid_token"`, rec.Header().Get("WWW-Authenticate"))
				assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
				return
			}

			require.True(t, called)
			assert.Equal(t, tt.wantRole, gotRole)
			if tt.wantUser == uuid.Nil {
				assert.False(t, hasUser)
				return
			}
			assert.True(t, hasUser)
			assert.Equal(t, tt.wantUser, gotUser)
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"empty header", "", ""},
		{"bearer with token", "Bearer valid-token", "valid-token"},
		{"bearer lowercase", "bearer valid-token", "valid-token"},
		{"bearer mixed case", "BEARER valid-token", "valid-token"},
		{"basic auth", "Basic dXNlcjpwYXNz", ""},
		{"bearer no space", "Bearertoken", ""},
		{"bearer padded token", "Bearer  valid-token ", "valid-token"},
		{"bearer empty token", "Bearer ", ""},
		{"just bearer", "Bearer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.want, extractBearerToken(req))
		})
	}
}
