// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package selector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/collegerank/internal/metrics"
	"github.com/tomtom215/collegerank/internal/recommend/predict"
)

// breakerName labels the training circuit breaker in logs and metrics.
const breakerName = "selector-training"

// Config controls model selection.
type Config struct {
	// Enabled turns classifier training on. When false the heuristic is
	// always selected.
	Enabled bool `koanf:"enabled"`

	MaxDepth int     `koanf:"max_depth"`
	TestSize float64 `koanf:"test_size"`
	Seed     int64   `koanf:"seed"`

	// TrainTimeout bounds one training run.
	TrainTimeout time.Duration `koanf:"train_timeout"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the training circuit breaker.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// DefaultConfig returns the standard selector settings.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MaxDepth:     6,
		TestSize:     0.2,
		Seed:         42,
		TrainTimeout: 5 * time.Second,
		Breaker: BreakerConfig{
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 3,
		},
	}
}

// Validate checks the selector settings.
func (c Config) Validate() error {
	if c.MaxDepth < 1 {
		return errors.New("selector.max_depth must be at least 1")
	}
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return errors.New("selector.test_size must be in (0, 1)")
	}
	if c.TrainTimeout <= 0 {
		return errors.New("selector.train_timeout must be positive")
	}
	if c.Breaker.FailureThreshold == 0 {
		return errors.New("selector.breaker.failure_threshold must be at least 1")
	}
	return nil
}

// Selection is the outcome of one model comparison.
type Selection struct {
	// Model is ModelHeuristic or ModelDecisionTree.
	Model string

	Heuristic Scores
	Tree      Scores

	// TreeTrained reports whether a tree was trained and evaluated.
	TreeTrained bool

	// Reason explains a heuristic fallback; empty when the tree was
	// evaluated normally.
	Reason string

	tree     *Tree
	features *Features
}

// UseTree reports whether candidates should be ordered by tree probability.
func (s *Selection) UseTree() bool {
	return s != nil && s.Model == ModelDecisionTree && s.tree != nil
}

// Probability returns the tree's success probability for a candidate group,
// or 0 when the tree is not in use.
func (s *Selection) Probability(key predict.GroupKey, predicted float64) float64 {
	if !s.UseTree() {
		return 0
	}
	return s.tree.Probability(s.features.Row(key, predicted))
}

// Comparator evaluates the heuristic against a freshly trained tree for each
// threshold. It is safe for concurrent use.
type Comparator struct {
	cfg      Config
	samples  []Sample
	features *Features
	x        [][]float64
	breaker  *gobreaker.CircuitBreaker[*trained]
	logger   zerolog.Logger
}

// trained carries a fitted tree and its held-out scores out of the breaker.
type trained struct {
	tree   *Tree
	scores Scores
}

// NewComparator precomputes the threshold-independent evaluation inputs.
//
//nolint:gocritic // logger passed by value for zerolog chaining
func NewComparator(cfg Config, samples []Sample, logger zerolog.Logger) *Comparator {
	logger = logger.With().Str("component", "selector").Logger()
	features := FitFeatures(samples)

	c := &Comparator{
		cfg:      cfg,
		samples:  samples,
		features: features,
		x:        features.Matrix(samples),
		logger:   logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*trained](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Breaker.FailureThreshold
		},
		// Caller cancellation and degenerate label sets are not faults.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, ErrSingleClass) ||
				errors.Is(err, ErrNoTrainingData)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("training circuit breaker state change")
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	})
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return c
}

// Samples returns the number of evaluation samples.
func (c *Comparator) Samples() int {
	return len(c.samples)
}

// BreakerState returns the training breaker state name.
func (c *Comparator) BreakerState() string {
	return c.breaker.State().String()
}

// Select compares both scorers at the given threshold. It never fails: any
// training problem yields a heuristic selection with Reason set.
func (c *Comparator) Select(ctx context.Context, threshold float64) *Selection {
	sel := &Selection{Model: ModelHeuristic}
	if len(c.samples) == 0 {
		sel.Reason = ErrNoTrainingData.Error()
		return sel
	}

	y := Labels(c.samples, threshold)
	heuristic := &Heuristic{Threshold: threshold}
	sel.Heuristic = Evaluate(y, PredictAll(heuristic, c.x))

	if !c.cfg.Enabled {
		sel.Reason = "classifier disabled"
		return sel
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (*trained, error) {
		return c.train(ctx, y)
	})
	metrics.RecordTraining(time.Since(start))

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordBreakerRequest(breakerName, "rejected")
		sel.Reason = err.Error()
		return sel
	case err != nil:
		metrics.RecordBreakerRequest(breakerName, "failure")
		c.logger.Debug().Err(err).Msg("classifier unavailable, using heuristic")
		sel.Reason = err.Error()
		return sel
	}
	metrics.RecordBreakerRequest(breakerName, "success")

	sel.TreeTrained = true
	sel.Tree = result.scores
	if sel.Tree.Accuracy > sel.Heuristic.Accuracy {
		sel.Model = ModelDecisionTree
		sel.tree = result.tree
		sel.features = c.features
	}
	return sel
}

func (c *Comparator) train(ctx context.Context, y []int) (*trained, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.TrainTimeout)
	defer cancel()

	trainIdx, testIdx, _ := Split(y, c.cfg.TestSize, c.cfg.Seed)

	xTrain, yTrain := gather(c.x, y, trainIdx)
	tree := NewTree(c.cfg.MaxDepth)
	if err := tree.Fit(ctx, xTrain, yTrain); err != nil {
		if errors.Is(err, ErrSingleClass) || errors.Is(err, ErrNoTrainingData) || ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrTrainingFailed, err)
	}

	xTest, yTest := gather(c.x, y, testIdx)
	return &trained{tree: tree, scores: Evaluate(yTest, PredictAll(tree, xTest))}, nil
}

func gather(x [][]float64, y []int, idx []int) ([][]float64, []int) {
	xs := make([][]float64, len(idx))
	ys := make([]int, len(idx))
	for i, j := range idx {
		xs[i] = x[j]
		ys[i] = y[j]
	}
	return xs, ys
}
