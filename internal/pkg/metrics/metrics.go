package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequestsTotal counts pricing API attempts by endpoint and outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supervault_upstream_requests_total",
			Help: "Total number of pricing API request attempts",
		},
		[]string{"endpoint", "status"},
	)

	// UpstreamRetriesTotal counts retried pricing API requests.
	UpstreamRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supervault_upstream_retries_total",
			Help: "Total number of pricing API retries",
		},
		[]string{"endpoint"},
	)

	// UpstreamLatency tracks pricing API latency per attempt.
	UpstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "supervault_upstream_latency_seconds",
			Help:    "Pricing API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// CacheLookupsTotal counts response cache lookups.
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supervault_cache_lookups_total",
			Help: "Response cache lookups by result",
		},
		[]string{"backend", "result"},
	)

	// PPSHealth exposes the last classified PPS health (0 unknown, 1 fresh, 2 warning, 3 stale).
	PPSHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "supervault_pps_health",
			Help: "Last observed PPS health classification per vault",
		},
		[]string{"chain", "vault"},
	)

	// HTTPRequestsTotal counts dashboard HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supervault_http_requests_total",
			Help: "Dashboard HTTP requests by route and status code",
		},
		[]string{"method", "route", "code"},
	)
)
