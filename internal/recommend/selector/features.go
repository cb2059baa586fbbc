// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package selector

import (
	"slices"

	"github.com/tomtom215/collegerank/internal/recommend/predict"
)

// Sample is one historical group used to evaluate scorers.
type Sample struct {
	Key predict.GroupKey

	// Predicted is the group's forecast closing rank.
	Predicted float64

	// Latest is the group's most recent observed closing rank.
	Latest float64
}

// SamplesFromGroups keeps the groups whose most recent row has a closing rank.
func SamplesFromGroups(groups []predict.Group) []Sample {
	out := make([]Sample, 0, len(groups))
	for _, g := range groups {
		if !g.LatestClosing.Valid {
			continue
		}
		out = append(out, Sample{Key: g.Key, Predicted: g.Predicted, Latest: g.LatestClosing.Value})
	}
	return out
}

// Labels returns the ground truth for a threshold.
func Labels(samples []Sample, threshold float64) []int {
	y := make([]int, len(samples))
	for i, s := range samples {
		if s.Latest >= threshold {
			y[i] = 1
		}
	}
	return y
}

// Feature column indexes.
const (
	FeatureInstitute = iota
	FeatureProgram
	FeatureStream
	FeatureQuota
	FeatureCategory
	FeaturePredictedRank

	numFeatures
)

// Encoder maps category values to their index in sorted unique order.
type Encoder struct {
	index map[string]int
}

// FitEncoder builds an encoder over values.
func FitEncoder(values []string) *Encoder {
	uniq := slices.Clone(values)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)

	e := &Encoder{index: make(map[string]int, len(uniq))}
	for i, v := range uniq {
		e.index[v] = i
	}
	return e
}

// Encode returns the code of v. Unseen values encode as 0.
func (e *Encoder) Encode(v string) int {
	return e.index[v]
}

// Len returns the number of known values.
func (e *Encoder) Len() int {
	return len(e.index)
}

// Features turns group keys and forecast ranks into model rows.
type Features struct {
	encoders [FeaturePredictedRank]*Encoder
}

// FitFeatures fits one encoder per categorical column.
func FitFeatures(samples []Sample) *Features {
	cols := [FeaturePredictedRank][]string{}
	for _, s := range samples {
		for j, v := range keyValues(s.Key) {
			cols[j] = append(cols[j], v)
		}
	}
	f := &Features{}
	for j := range cols {
		f.encoders[j] = FitEncoder(cols[j])
	}
	return f
}

// Row encodes one group.
func (f *Features) Row(key predict.GroupKey, predicted float64) []float64 {
	row := make([]float64, numFeatures)
	for j, v := range keyValues(key) {
		row[j] = float64(f.encoders[j].Encode(v))
	}
	row[FeaturePredictedRank] = predicted
	return row
}

// Matrix encodes every sample.
func (f *Features) Matrix(samples []Sample) [][]float64 {
	x := make([][]float64, len(samples))
	for i, s := range samples {
		x[i] = f.Row(s.Key, s.Predicted)
	}
	return x
}

func keyValues(k predict.GroupKey) [FeaturePredictedRank]string {
	return [FeaturePredictedRank]string{k.Institute, k.Program, k.Stream, k.Quota, k.Category}
}
