package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Auth outcomes recorded by the authentication gate.
const (
	AuthOutcomeNoToken   = "no_token"
	AuthOutcomeRejected  = "rejected"
	AuthOutcomeUnknown   = "unknown_subject"
	AuthOutcomeValid     = "authenticated"
	AuthOutcomeDuplicate = "already_authenticated"
)

// Metrics holds the service's prometheus collectors.
type Metrics struct {
	registry        *prometheus.Registry
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorCount      *prometheus.CounterVec
	authOutcomes    *prometheus.CounterVec
}

// NewMetrics registers collectors on a private registry.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errorCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Errors rendered by the error middleware, by code.",
		}, []string{"route", "method", "code"}),
		authOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_gate_outcomes_total",
			Help:      "Authentication gate results.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.requestCount, m.requestDuration, m.errorCount, m.authOutcomes)
	return m
}

// Registry exposes the registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(route, method, code).Inc()
}

// RecordAuthOutcome counts one gate decision.
func (m *Metrics) RecordAuthOutcome(outcome string) {
	if m == nil {
		return
	}
	m.authOutcomes.WithLabelValues(outcome).Inc()
}
