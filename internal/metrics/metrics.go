// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package metrics holds Marquee's Prometheus collectors.
//
// Collectors are registered on the default registry via promauto and served
// by the /metrics route. Callers should prefer the Record* helpers over
// touching the vectors directly so label values stay consistent.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes used as the "outcome" label.
const (
	OutcomeServed   = "served"
	OutcomeEmpty    = "empty"
	OutcomeDegraded = "degraded"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_api_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_recommendation_requests_total",
			Help: "Recommendation requests by strategy and outcome",
		},
		[]string{"strategy", "outcome"}, // outcome: served, empty, degraded
	)

	RecommendationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_recommendation_failures_total",
			Help: "Recommendation requests degraded to an empty result, by reason",
		},
		[]string{"strategy", "reason"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_recommendation_duration_seconds",
			Help:    "End-to-end recommendation latency including collaborator calls",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"strategy"},
	)

	RecommendationResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_recommendation_result_size",
			Help:    "Number of movies returned per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"strategy"},
	)

	AffinityGenres = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_affinity_genres",
			Help:    "Distinct genres in a computed user affinity profile",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	CatalogMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_catalog_misses_total",
			Help: "Interaction records skipped because the movie no longer exists",
		},
	)

	// Search collaborator Metrics
	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_search_duration_seconds",
			Help:    "Duration of calls to the search engine",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "index"}, // operation: search, get, mget, history, open_pit
	)

	SearchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_search_errors_total",
			Help: "Failed calls to the search engine",
		},
		[]string{"operation", "index"},
	)

	// DependencyUp is 1 while the last health check of a backend succeeded.
	DependencyUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_dependency_up",
			Help: "Whether the last health check of a backend succeeded (1) or failed (0)",
		},
		[]string{"dependency"},
	)

	// History store Metrics (DuckDB backend)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one orchestrator call. reason is empty for a
// successful call; otherwise the call is counted as degraded.
func RecordRecommendation(strategy, reason string, duration time.Duration, returned int) {
	outcome := OutcomeServed
	switch {
	case reason != "":
		outcome = OutcomeDegraded
		RecommendationFailures.WithLabelValues(strategy, reason).Inc()
	case returned == 0:
		outcome = OutcomeEmpty
	}
	RecommendationRequests.WithLabelValues(strategy, outcome).Inc()
	RecommendationDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	RecommendationResultSize.WithLabelValues(strategy).Observe(float64(returned))
}

// RecordAffinityProfile records the shape of one computed affinity profile.
func RecordAffinityProfile(genres, skipped int) {
	AffinityGenres.Observe(float64(genres))
	if skipped > 0 {
		CatalogMisses.Add(float64(skipped))
	}
}

// RecordSearch records a call to the search engine.
func RecordSearch(operation, index string, duration time.Duration, err error) {
	SearchDuration.WithLabelValues(operation, index).Observe(duration.Seconds())
	if err != nil {
		SearchErrors.WithLabelValues(operation, index).Inc()
	}
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordDependencyCheck sets the up gauge for a backend.
func RecordDependencyCheck(dependency string, err error) {
	if err != nil {
		DependencyUp.WithLabelValues(dependency).Set(0)
		return
	}
	DependencyUp.WithLabelValues(dependency).Set(1)
}
