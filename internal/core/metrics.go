// AngelaMos | 2026
// metrics.go

package core

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "dashboard"

// Metrics is nil-safe: every Record method on a nil *Metrics is a no-op, so
// services can be built without a registry in tests.
type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	authAttempts   *prometheus.CounterVec
	activitySeeded prometheus.Counter
	degraded       *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "auth_attempts_total",
			Help:      "Register and login attempts by outcome.",
		}, []string{"action", "outcome"}),
		activitySeeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "activity_records_seeded_total",
			Help:      "Demo activity records inserted by the seeder.",
		}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "metrics_degraded_total",
			Help:      "Dashboard sub-aggregations replaced by an empty value.",
		}, []string{"component"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.authAttempts,
		m.activitySeeded,
		m.degraded,
	)

	return m
}

func (m *Metrics) RecordHTTPRequest(
	method, route string,
	status int,
	duration time.Duration,
) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) RecordAuthAttempt(action, outcome string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) RecordActivitySeeded(count int) {
	if m == nil {
		return
	}
	m.activitySeeded.Add(float64(count))
}

func (m *Metrics) RecordDegraded(component string) {
	if m == nil {
		return
	}
	m.degraded.WithLabelValues(component).Inc()
}

func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
