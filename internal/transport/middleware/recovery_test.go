package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/alice-reader-backend/pkg/ctxutil"
)

func TestRecovery_NoPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	Recovery(logger)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, buf.String())
}

func TestRecovery_Panic(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "tea party ran out of tea", want: "tea party ran out of tea"},
		{name: "error", value: errors.New("mad hatter"), want: "mad hatter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.value)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/vocabulary", nil)
			req = req.WithContext(ctxutil.WithRequestID(req.Context(), "req-42"))
			rec := httptest.NewRecorder()

			Recovery(logger)(handler).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())

			out := buf.String()
			assert.Contains(t, out, "panic recovered")
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "request_id=req-42")
			assert.Contains(t, out, "path=/api/v1/vocabulary")
		})
	}
}

func TestRecovery_ReraisesAbortHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	defer func() {
		require.Equal(t, http.ErrAbortHandler, recover())
	}()
	Recovery(logger)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	t.Fatal("expected panic to propagate")
}
