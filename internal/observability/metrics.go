package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the front end. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	errors           *prometheus.CounterVec
	upstream         *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	audit            *prometheus.CounterVec
}

// NewMetrics registers collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "job_portal",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "job_portal",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "job_portal",
			Name:      "http_errors_total",
			Help:      "Rendered errors by code.",
		}, []string{"route", "method", "code"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "job_portal",
			Name:      "upstream_requests_total",
			Help:      "Backend API calls by operation and status (0 = no response).",
		}, []string{"operation", "status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "job_portal",
			Name:      "upstream_request_duration_seconds",
			Help:      "Backend API latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		audit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "job_portal",
			Name:      "audit_events_total",
			Help:      "Front-end actions by event type.",
		}, []string{"event"}),
	}
	m.registry.MustRegister(
		m.requests, m.requestDuration, m.errors,
		m.upstream, m.upstreamDuration, m.audit,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, method, code).Inc()
}

// RecordUpstream implements upstream.Observer.
func (m *Metrics) RecordUpstream(operation string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstream.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	m.upstreamDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAudit counts an audited front-end action.
func (m *Metrics) RecordAudit(event string) {
	if m == nil {
		return
	}
	m.audit.WithLabelValues(event).Inc()
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
