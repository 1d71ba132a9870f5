package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus mirrors of the aggregator counters, exported for scraping.
var (
	// dispatchesTotal counts dispatch attempts by endpoint and outcome
	dispatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "router_dispatches_total",
			Help: "Total number of dispatch attempts per endpoint",
		},
		[]string{"endpoint", "outcome"},
	)

	// dispatchDuration measures dispatch attempt duration in seconds
	dispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "router_dispatch_duration_seconds",
			Help:    "Dispatch attempt duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

func observe(name string, latency time.Duration, success bool) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	dispatchesTotal.WithLabelValues(name, outcome).Inc()
	dispatchDuration.WithLabelValues(name).Observe(latency.Seconds())
}
