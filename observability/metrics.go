// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the SDK's collaborator boundary.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// API PROXY METRICS
// =============================================================================

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kit_api_requests_total",
			Help: "Total number of platform API proxy requests",
		},
		[]string{"path", "status"}, // status: success, error
	)

	apiRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kit_api_request_duration_seconds",
			Help:    "Platform API proxy request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"path"},
	)
)

// RecordAPIRequest records one API proxy request outcome.
func RecordAPIRequest(path, status string, seconds float64) {
	apiRequestsTotal.WithLabelValues(path, status).Inc()
	apiRequestDurationSeconds.WithLabelValues(path).Observe(seconds)
}

// =============================================================================
// KEY-VALUE SCOPE METRICS
// =============================================================================

var (
	dbScopeLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kit_db_scope_loads_total",
			Help: "Total number of key-value scope fetches",
		},
		[]string{"scope", "status"}, // status: success, empty, error
	)

	dbCommitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kit_db_commits_total",
			Help: "Total number of key-value commit operations",
		},
		[]string{"status"},
	)
)

// RecordScopeLoad records one scope fetch outcome.
func RecordScopeLoad(scope, status string) {
	dbScopeLoadsTotal.WithLabelValues(scope, status).Inc()
}

// RecordCommit records one commit outcome.
func RecordCommit(status string) {
	dbCommitsTotal.WithLabelValues(status).Inc()
}

// =============================================================================
// RESPONSE METRICS
// =============================================================================

var (
	responsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kit_responses_total",
			Help: "Total number of assembled responses by event kind",
		},
		[]string{"kind"},
	)
)

// RecordResponse records one assembled response.
func RecordResponse(kind string) {
	responsesTotal.WithLabelValues(kind).Inc()
}
