// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

const namespace = "alice_reader"

// Metrics groups the application collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	resolutions      *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	tierFaults       *prometheus.CounterVec
	telemetryDropped prometheus.Counter
	httpRequests     *prometheus.CounterVec
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Term resolutions by the source that produced the result.",
		}, []string{"source"}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "cache_lookups_total",
			Help:      "Definition cache lookups by result (hit or miss).",
		}, []string{"result"}),
		tierFaults: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "tier_faults_total",
			Help:      "Resolver tier faults (errors or panics) by tier.",
		}, []string{"tier"}),
		telemetryDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "telemetry",
			Name:      "dropped_jobs_total",
			Help:      "Telemetry jobs dropped because the queue was full.",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}
}

func (m *Metrics) Resolution(source domain.Source) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(source.String()).Inc()
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) TierFault(tier string) {
	if m == nil {
		return
	}
	m.tierFaults.WithLabelValues(tier).Inc()
}

func (m *Metrics) TelemetryDropped() {
	if m == nil {
		return
	}
	m.telemetryDropped.Inc()
}

func (m *Metrics) HTTPRequest(method, code string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, code).Inc()
}
