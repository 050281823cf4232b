package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	httpAPIMetricsNamespace     = "http_api"
	interpreterMetricsNamespace = "spl"
)

var (
	metricApiTotalRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: httpAPIMetricsNamespace,
			Name:      "total_hits",
			Help:      "HTTP API requests count",
		},
	)

	metricApiHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: httpAPIMetricsNamespace,
			Name:      "path_hits",
			Help:      "HTTP API paths hits",
		},
		[]string{"status", "path"},
	)

	metricApiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: httpAPIMetricsNamespace,
			Name:      "path_duration",
			Help:      "HTTP API request duration in seconds",
		},
		[]string{"method", "path"},
	)

	metricRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: interpreterMetricsNamespace,
			Name:      "runs_total",
			Help:      "Executed requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	metricCachedResults = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: interpreterMetricsNamespace,
			Name:      "cached_results",
			Help:      "Program results held in the result cache",
		},
	)

	metricErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: interpreterMetricsNamespace,
			Name:      "errors_total",
			Help:      "Recorded interpreter errors by kind",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		metricApiTotalRequests,
		metricApiHits,
		metricApiRequestDuration,
		metricRuns,
		metricErrors,
		metricCachedResults,
	)
}
