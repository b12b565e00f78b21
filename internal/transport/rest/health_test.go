package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dbPingerMock struct {
	err error
}

func (m *dbPingerMock) Ping(_ context.Context) error {
	return m.err
}

type queueStatsMock struct {
	pending, capacity int
}

func (m queueStatsMock) Pending() int  { return m.pending }
func (m queueStatsMock) Capacity() int { return m.capacity }

func serveProbe(t *testing.T, fn http.HandlerFunc, path string) (int, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&dbPingerMock{err: errors.New("down")}, nil, "test-version")
	code, resp := serveProbe(t, h.Live, "/live")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		db         dbPinger
		wantCode   int
		wantStatus string
	}{
		{name: "db up", db: &dbPingerMock{}, wantCode: http.StatusOK, wantStatus: "ok"},
		{name: "db down", db: &dbPingerMock{err: errors.New("connection refused")}, wantCode: http.StatusServiceUnavailable, wantStatus: "down"},
		{name: "no database", db: nil, wantCode: http.StatusOK, wantStatus: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHealthHandler(tt.db, nil, "v")
			code, resp := serveProbe(t, h.Ready, "/ready")
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, resp.Status)
		})
	}
}

func TestHealth_AllOK(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&dbPingerMock{}, queueStatsMock{pending: 3, capacity: 256}, "v1.0.0")
	code, resp := serveProbe(t, h.Health, "/health")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "v1.0.0", resp.Version)

	db := resp.Components["database"]
	assert.Equal(t, "ok", db.Status)
	assert.NotEmpty(t, db.Latency)

	q := resp.Components["telemetry_queue"]
	assert.Equal(t, "ok", q.Status)
	assert.Equal(t, "3/256 queued", q.Detail)
}

func TestHealth_DBDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&dbPingerMock{err: errors.New("connection refused")}, nil, "v1.0.0")
	code, resp := serveProbe(t, h.Health, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "down", resp.Status)
	assert.Equal(t, "down", resp.Components["database"].Status)
	assert.Empty(t, resp.Components["database"].Latency)
	assert.NotContains(t, resp.Components, "telemetry_queue")
}

func TestHealth_SaturatedQueueKeepsOverallOK(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&dbPingerMock{}, queueStatsMock{pending: 8, capacity: 8}, "v1.0.0")
	code, resp := serveProbe(t, h.Health, "/health")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "saturated", resp.Components["telemetry_queue"].Status)
}

func TestHealth_NoDatabase(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(nil, nil, "v1.0.0")
	code, resp := serveProbe(t, h.Health, "/health")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "disabled", resp.Components["database"].Status)
}
