// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered with the default registry through promauto when the
package is imported. Callers use the Record* helpers rather than touching the
collectors directly.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation Metrics:
  - collegerank_recommend_requests_total: Requests by result status (counter)
    Labels: status (success, warning, error)
  - collegerank_recommend_duration_seconds: Request latency (histogram)
  - collegerank_cascade_level_total: Filter level that produced candidates (counter)
    Labels: level
  - collegerank_model_selected_total: Ranking model chosen (counter)
    Labels: model (heuristic, decision_tree)
  - collegerank_selector_training_duration_seconds: Classifier training time (histogram)

Data Metrics:
  - collegerank_corpus_rows: Normalized rank rows loaded (gauge)
  - collegerank_rules_loaded: Association rules held by the engine (gauge)
  - collegerank_rules_mined_total: Rule set initializations (counter)
    Labels: source (file, mined)

API Metrics:
  - collegerank_api_requests_total: Requests (counter)
    Labels: method, route, status_code
  - collegerank_api_request_duration_seconds: Latency (histogram)
    Labels: method, route
  - collegerank_api_active_requests: In-flight requests (gauge)

Circuit Breaker Metrics:
  - collegerank_circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - collegerank_circuit_breaker_requests_total: Results (counter)
    Labels: name, result (success, failure, rejected)
  - collegerank_circuit_breaker_state_transitions_total: Transitions (counter)
    Labels: name, from_state, to_state

# Example Queries

Share of requests that ended without recommendations:

	sum(rate(collegerank_recommend_requests_total{status!="success"}[5m]))
	  / sum(rate(collegerank_recommend_requests_total[5m]))

How often the learned model wins:

	rate(collegerank_model_selected_total{model="decision_tree"}[1h])

# Thread Safety

All collectors are safe for concurrent use.
*/
package metrics
