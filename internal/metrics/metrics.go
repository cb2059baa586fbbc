// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the recommendation engine and its HTTP adapter.

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collegerank_recommend_requests_total",
			Help: "Total number of recommendation requests by result status",
		},
		[]string{"status"}, // success, warning, error
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collegerank_recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CascadeLevel = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collegerank_cascade_level_total",
			Help: "Filter cascade level that produced the candidate set",
		},
		[]string{"level"},
	)

	ModelSelected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collegerank_model_selected_total",
			Help: "Ranking model chosen by the model selector",
		},
		[]string{"model"}, // heuristic, decision_tree
	)

	SelectorTrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collegerank_selector_training_duration_seconds",
			Help:    "Duration of per-request classifier training in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// Data Metrics
	CorpusRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "collegerank_corpus_rows",
			Help: "Number of normalized rank rows loaded",
		},
	)

	RulesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "collegerank_rules_loaded",
			Help: "Number of association rules held by the engine",
		},
	)

	RulesMined = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collegerank_rules_mined_total",
			Help: "Rule set initializations by source",
		},
		[]string{"source"}, // file, mined
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collegerank_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "collegerank_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "collegerank_api_active_requests",
			Help: "Number of API requests currently in flight",
		},
	)

	ResultCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collegerank_result_cache_requests_total",
			Help: "Recommendation result cache lookups",
		},
		[]string{"result"}, // hit, miss
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "collegerank_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collegerank_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collegerank_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "collegerank_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordRecommendation records the outcome of one recommendation request.
func RecordRecommendation(status string, duration time.Duration) {
	RecommendRequests.WithLabelValues(status).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordCascadeLevel records which filter level produced candidates.
func RecordCascadeLevel(level string) {
	CascadeLevel.WithLabelValues(level).Inc()
}

// RecordModelSelection records the ranking model chosen for a request.
func RecordModelSelection(model string) {
	ModelSelected.WithLabelValues(model).Inc()
}

// RecordTraining records the duration of a classifier training run.
func RecordTraining(duration time.Duration) {
	SelectorTrainingDuration.Observe(duration.Seconds())
}

// RecordRules records a rule set initialization.
func RecordRules(source string, count int) {
	RulesMined.WithLabelValues(source).Inc()
	RulesLoaded.Set(float64(count))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, route, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetAppInfo publishes the build version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// RecordResultCache records a result cache lookup.
func RecordResultCache(hit bool) {
	if hit {
		ResultCacheRequests.WithLabelValues("hit").Inc()
		return
	}
	ResultCacheRequests.WithLabelValues("miss").Inc()
}

// RecordBreakerTransition updates circuit breaker state metrics.
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerState.WithLabelValues(name).Set(BreakerStateValue(to))
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordBreakerRequest records a request result through a circuit breaker.
func RecordBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// BreakerStateValue maps a breaker state name to its gauge value.
func BreakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
