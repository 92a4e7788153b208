package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wallet_inspector"

var (
	// UpstreamRequests counts indexer API calls by endpoint and outcome.
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Indexer API requests by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	// UpstreamRequestDuration observes indexer API latency.
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Indexer API request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// SnapshotFetchFailures counts failed snapshot sub-fetches by field.
	SnapshotFetchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_fetch_failures_total",
			Help:      "Wallet snapshot fields that could not be fetched.",
		},
		[]string{"field"},
	)

	// RateLimitedRequests counts requests rejected by the per-IP limiter.
	RateLimitedRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the per-IP rate limiter.",
		},
	)

	registerOnce sync.Once
)

// Outcome labels for UpstreamRequests.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// MustRegisterMetrics registers the collectors with the default registry.
// Repeated calls are no-ops.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			UpstreamRequests,
			UpstreamRequestDuration,
			SnapshotFetchFailures,
			RateLimitedRequests,
		)
	})
}
