// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "client_bff"

var (
	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Searches served, by path and result code.",
		},
		[]string{"path", "outcome"},
	)

	searchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "End-to-end search latency by path.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	pricingFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_failures_total",
			Help:      "Offers dropped because their pricing lookup failed.",
		},
	)

	authFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Rejected requests by reason.",
		},
		[]string{"reason"},
	)
)

func ObserveSearch(path, outcome string, elapsed time.Duration) {
	searchesTotal.WithLabelValues(path, outcome).Inc()
	searchDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}

func PricingFailure() {
	pricingFailuresTotal.Inc()
}

func AuthFailure(reason string) {
	authFailuresTotal.WithLabelValues(reason).Inc()
}
