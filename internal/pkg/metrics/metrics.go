package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Run metrics
	RunsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toypas_runs_completed_total",
			Help: "Total number of runs that finished successfully",
		},
		[]string{"kind"},
	)

	RunsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toypas_runs_failed_total",
			Help: "Total number of runs that ended with an error",
		},
		[]string{"kind"},
	)

	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "toypas_run_duration_seconds",
			Help:    "Run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16), // 0.5ms to ~16s
		},
		[]string{"kind", "status"},
	)

	// Interpreter metrics
	ProceduresGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "toypas_procedures_generated_total",
			Help: "Total number of procedure blocks emitted by the generator",
		},
	)

	SourceBytesInterpreted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "toypas_source_bytes_interpreted_total",
			Help: "Total number of source bytes handed to the interpreter",
		},
	)

	// API metrics
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toypas_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "toypas_api_request_duration_seconds",
			Help:    "API request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// ObserveRun records the outcome of one run
func ObserveRun(kind string, seconds float64, err error) {
	status := "succeeded"
	if err != nil {
		status = "failed"
		RunsFailed.WithLabelValues(kind).Inc()
	} else {
		RunsCompleted.WithLabelValues(kind).Inc()
	}
	RunDuration.WithLabelValues(kind, status).Observe(seconds)
}
