// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package selector

import (
	"context"
	"errors"
)

// Model names.
const (
	ModelHeuristic    = "heuristic"
	ModelDecisionTree = "decision_tree"
)

var (
	// ErrNoTrainingData is returned when there are no samples to learn from.
	ErrNoTrainingData = errors.New("no training data")

	// ErrSingleClass is returned when a split leaves only one class to
	// evaluate against.
	ErrSingleClass = errors.New("training labels contain a single class")

	// ErrTrainingFailed wraps any other training failure.
	ErrTrainingFailed = errors.New("classifier training failed")
)

// Scorer is a binary classifier over encoded feature rows.
type Scorer interface {
	// Name returns the model identifier.
	Name() string

	// Fit trains on rows x with labels y.
	Fit(ctx context.Context, x [][]float64, y []int) error

	// Predict returns the predicted label of one row.
	Predict(row []float64) int

	// Probability returns the estimated probability that the label is 1.
	Probability(row []float64) float64
}

// Heuristic predicts success when the forecast rank meets the threshold.
type Heuristic struct {
	Threshold float64
}

// Name implements Scorer.
func (h *Heuristic) Name() string { return ModelHeuristic }

// Fit implements Scorer. The heuristic has nothing to learn.
func (h *Heuristic) Fit(context.Context, [][]float64, []int) error { return nil }

// Predict implements Scorer.
func (h *Heuristic) Predict(row []float64) int {
	if row[FeaturePredictedRank] >= h.Threshold {
		return 1
	}
	return 0
}

// Probability implements Scorer.
func (h *Heuristic) Probability(row []float64) float64 {
	return float64(h.Predict(row))
}

// PredictAll applies s to every row.
func PredictAll(s Scorer, x [][]float64) []int {
	out := make([]int, len(x))
	for i, row := range x {
		out[i] = s.Predict(row)
	}
	return out
}
