// Package metrics exposes Prometheus collectors for HTTP traffic and the
// application workflow.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobboard_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	applicationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_application_operations_total",
		Help: "Application workflow operations by operation and outcome",
	}, []string{"operation", "outcome"})

	resumeOrphans = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_resume_orphans_total",
		Help: "Stored resumes left without an application record, by reason",
	}, []string{"reason"})
)

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTPRequest records a completed HTTP request.
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveApplication counts a workflow operation outcome.
func ObserveApplication(operation, outcome string) {
	applicationOutcomes.WithLabelValues(operation, outcome).Inc()
}

// ObserveOrphan counts a resume left in object storage without a record.
func ObserveOrphan(reason string) {
	resumeOrphans.WithLabelValues(reason).Inc()
}
