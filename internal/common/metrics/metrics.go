// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	DiscoveryQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_queries_total",
			Help: "Browse requests served, by sort key and cache outcome",
		},
		[]string{"sort", "cache"},
	)

	DiscoveryResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_result_size",
			Help:    "Number of providers returned per browse request",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	DiscoveryEmptyResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_empty_results_total",
			Help: "Browse requests that matched no provider",
		},
	)

	CatalogProviders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_providers",
			Help: "Providers in the loaded catalog snapshot",
		},
	)
)

// Cache outcome label values for DiscoveryQueries.
const (
	CacheHit      = "hit"
	CacheMiss     = "miss"
	CacheDisabled = "disabled"
	CacheError    = "error"
)
