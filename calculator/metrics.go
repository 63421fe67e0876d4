package calculator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Estimates served, partitioned by action and result status
	estimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_estimates_total",
			Help: "Total number of carbon estimates served",
		},
		[]string{"action", "status"},
	)

	// Evaluation latency per action
	estimateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "calculator_estimate_duration_seconds",
			Help:    "Action evaluation latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Size of the in-memory constants table
	constantsTableEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "calculator_constants_entries",
			Help: "Number of entries in the in-memory constants table",
		},
	)

	// Full reloads of the constants table
	constantsReloadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "calculator_constants_reloads_total",
			Help: "Total number of wholesale constants table reloads",
		},
	)
)
