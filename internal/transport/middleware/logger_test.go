package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
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

func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m), "log output: %s", buf.String())
	return m
}

func TestLogger_Record(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		status    int
		body      string
		wantLevel string
	}{
		{name: "ok", method: http.MethodGet, path: "/api/v1/books/b/definitions/alice", status: http.StatusOK, body: `{"term":"Alice"}`, wantLevel: "INFO"},
		{name: "implicit 200 on write", method: http.MethodGet, path: "/api/v1/vocabulary", status: 0, body: "{}", wantLevel: "INFO"},
		{name: "client error", method: http.MethodPut, path: "/api/v1/vocabulary", status: http.StatusBadRequest, wantLevel: "WARN"},
		{name: "server error", method: http.MethodPost, path: "/api/v1/lookups", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "probe", method: http.MethodGet, path: "/live", status: http.StatusOK, wantLevel: "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req = req.WithContext(ctxutil.WithRequestID(req.Context(), "req-123"))
			Logger(newJSONLogger(&buf), nil)(handler).ServeHTTP(httptest.NewRecorder(), req)

			m := decodeRecord(t, &buf)
			wantStatus := tt.status
			if wantStatus == 0 {
				wantStatus = http.StatusOK
			}
			assert.Equal(t, "http.request", m["msg"])
			assert.Equal(t, tt.wantLevel, m["level"])
			assert.Equal(t, tt.method, m["method"])
			assert.Equal(t, tt.path, m["path"])
			assert.EqualValues(t, wantStatus, m["status"])
			assert.EqualValues(t, len(tt.body), m["bytes"])
			assert.Equal(t, "req-123", m["request_id"])
			assert.Contains(t, m, "duration")
			assert.NotContains(t, m, "user_id")
		})
	}
}

type recordedRequest struct{ method, code string }

type fakeRecorder struct{ got []recordedRequest }

func (f *fakeRecorder) HTTPRequest(method, code string) {
	f.got = append(f.got, recordedRequest{method, code})
}

func TestLogger_RecordsMetrics(t *testing.T) {
	rec := &fakeRecorder{}

	wrapped := Logger(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)), rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/x", nil))

	assert.Equal(t, []recordedRequest{{"DELETE", "418"}}, rec.got)
}

func TestLogger_IncludesUserIDResolvedByAuth(t *testing.T) {
	var buf bytes.Buffer
	userID := uuid.New()
	validator := &tokenValidatorMock{
		ValidateTokenFunc: func(context.Context, string) (auth.Identity, error) {
			return auth.Identity{UserID: userID, Role: domain.UserRoleAuthenticated}, nil
		},
	}

	wrapped := Chain(Logger(newJSONLogger(&buf), nil), Auth(validator))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vocabulary", nil)
	req.Header.Set("Authorization", "Bearer token")
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, userID.String(), decodeRecord(t, &buf)["user_id"])
}

func TestStatusWriter_FirstStatusWins(t *testing.T) {
	sw := &statusWriter{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}

	_, _ = sw.Write([]byte("body"))
	sw.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusOK, sw.status)
	assert.EqualValues(t, 4, sw.bytes)
}
