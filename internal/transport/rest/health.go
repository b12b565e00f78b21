package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

type queueStats interface {
	Pending() int
	Capacity() int
}

// HealthHandler serves the liveness, readiness and health probes.
// A nil db means the process runs without a database; database checks are
// then reported as "disabled" and never fail the probe.
type HealthHandler struct {
	db      dbPinger
	queue   queueStats
	version string
}

// NewHealthHandler creates a HealthHandler. queue may be nil.
func NewHealthHandler(db dbPinger, queue queueStats, version string) *HealthHandler {
	return &HealthHandler{db: db, queue: queue, version: version}
}

// HealthResponse is the JSON response for /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Live always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready returns 503 when the database does not answer a ping.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	db := h.checkDB(r.Context())

	status, code := "ok", http.StatusOK
	if db.Status == "down" {
		status, code = "down", http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
	})
}

// Health reports every component with the build version. Only the database
// decides the overall status; a saturated telemetry queue drops events but
// lookups keep working.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := map[string]CompStatus{
		"database": h.checkDB(r.Context()),
	}
	if h.queue != nil {
		components["telemetry_queue"] = h.checkQueue()
	}

	status, code := "ok", http.StatusOK
	if components["database"].Status == "down" {
		status, code = "down", http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) checkDB(ctx context.Context) CompStatus {
	if h.db == nil {
		return CompStatus{Status: "disabled"}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return CompStatus{Status: "down"}
	}
	return CompStatus{Status: "ok", Latency: time.Since(start).String()}
}

func (h *HealthHandler) checkQueue() CompStatus {
	pending, capacity := h.queue.Pending(), h.queue.Capacity()
	st := CompStatus{Status: "ok", Detail: fmt.Sprintf("%d/%d queued", pending, capacity)}
	if capacity > 0 && pending >= capacity {
		st.Status = "saturated"
	}
	return st
}
