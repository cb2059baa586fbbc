// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package metrics

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

// TestRecordRecommendation tests recommendation metric recording
func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name   string
		status string
	}{
		{name: "success", status: "success"},
		{name: "warning", status: "warning"},
		{name: "error", status: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.status))
			samples := histogramCount(t, RecommendDuration)

			RecordRecommendation(tt.status, 15*time.Millisecond)

			if got := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.status)); got != before+1 {
				t.Errorf("requests{%s} = %v, want %v", tt.status, got, before+1)
			}
			if got := histogramCount(t, RecommendDuration); got != samples+1 {
				t.Errorf("duration samples = %d, want %d", got, samples+1)
			}
		})
	}
}

func TestRecordCascadeAndModel(t *testing.T) {
	level := testutil.ToFloat64(CascadeLevel.WithLabelValues("full"))
	model := testutil.ToFloat64(ModelSelected.WithLabelValues("heuristic"))

	RecordCascadeLevel("full")
	RecordModelSelection("heuristic")

	if got := testutil.ToFloat64(CascadeLevel.WithLabelValues("full")); got != level+1 {
		t.Errorf("cascade{full} = %v, want %v", got, level+1)
	}
	if got := testutil.ToFloat64(ModelSelected.WithLabelValues("heuristic")); got != model+1 {
		t.Errorf("model{heuristic} = %v, want %v", got, model+1)
	}
}

func TestRecordRules(t *testing.T) {
	before := testutil.ToFloat64(RulesMined.WithLabelValues("mined"))
	RecordRules("mined", 42)

	if got := testutil.ToFloat64(RulesLoaded); got != 42 {
		t.Errorf("RulesLoaded = %v, want 42", got)
	}
	if got := testutil.ToFloat64(RulesMined.WithLabelValues("mined")); got != before+1 {
		t.Errorf("RulesMined{mined} = %v, want %v", got, before+1)
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("1.2.3")
	if got := testutil.ToFloat64(AppInfo.WithLabelValues("1.2.3", runtime.Version())); got != 1 {
		t.Errorf("AppInfo = %v, want 1", got)
	}
}

func TestRecordResultCache(t *testing.T) {
	hits := ResultCacheRequests.WithLabelValues("hit")
	misses := ResultCacheRequests.WithLabelValues("miss")
	beforeHits, beforeMisses := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordResultCache(true)
	RecordResultCache(false)
	RecordResultCache(false)

	if got := testutil.ToFloat64(hits) - beforeHits; got != 1 {
		t.Errorf("hit delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(misses) - beforeMisses; got != 2 {
		t.Errorf("miss delta = %v, want 2", got)
	}
}

// TestCircuitBreakerMetrics tests circuit breaker metric recording
func TestCircuitBreakerMetrics(t *testing.T) {
	cbName := "test-breaker"

	RecordBreakerTransition(cbName, "closed", "open")
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(cbName)); got != 2 {
		t.Errorf("state = %v, want 2 (open)", got)
	}
	RecordBreakerTransition(cbName, "open", "half-open")
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(cbName)); got != 1 {
		t.Errorf("state = %v, want 1 (half-open)", got)
	}
	RecordBreakerTransition(cbName, "half-open", "closed")
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(cbName)); got != 0 {
		t.Errorf("state = %v, want 0 (closed)", got)
	}

	RecordBreakerRequest(cbName, "rejected")
	if got := testutil.ToFloat64(CircuitBreakerRequests.WithLabelValues(cbName, "rejected")); got != 1 {
		t.Errorf("requests{rejected} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CircuitBreakerTransitions.WithLabelValues(cbName, "closed", "open")); got != 1 {
		t.Errorf("transitions{closed->open} = %v, want 1", got)
	}
}

func TestBreakerStateValue(t *testing.T) {
	tests := []struct {
		state string
		want  float64
	}{
		{"closed", 0},
		{"half-open", 1},
		{"open", 2},
		{"unknown state", 0},
	}
	for _, tt := range tests {
		if got := BreakerStateValue(tt.state); got != tt.want {
			t.Errorf("BreakerStateValue(%q) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

// TestConcurrentMetricRecording tests thread safety of metric recording
func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordAPIRequest("POST", "/api/v1/recommend", "200", time.Millisecond)
			TrackActiveRequest(true)
			TrackActiveRequest(false)
			RecordTraining(2 * time.Millisecond)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != 0 {
		t.Errorf("APIActiveRequests = %v, want 0", got)
	}
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommend", "200")); got < 50 {
		t.Errorf("APIRequestsTotal = %v, want >= 50", got)
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)
	CorpusRows.Set(10)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("GET", "/api/v1/metadata", "200", 25*time.Millisecond)
	}
}
