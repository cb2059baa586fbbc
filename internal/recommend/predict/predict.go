// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package predict

import (
	"sort"

	"github.com/tomtom215/collegerank/internal/dataset"
)

// Candidate is one predicted admission outcome.
type Candidate struct {
	Institute string
	Program   string
	Stream    string
	SeatType  string
	Quota     string
	Category  string
	District  string

	OpeningRank dataset.Float

	// PredictedClosingRank is null only on the target-year fast path when the
	// observed closing rank was missing.
	PredictedClosingRank dataset.Float
}

// Key returns the candidate's forecast group key.
func (c *Candidate) Key() GroupKey {
	return GroupKey{
		Institute: c.Institute,
		Program:   c.Program,
		Stream:    c.Stream,
		Quota:     c.Quota,
		Category:  c.Category,
	}
}

// Prediction is the output of Predict.
type Prediction struct {
	Candidates []Candidate

	// Level is the cascade level that produced the survivors.
	Level Level

	// Matched is the number of rows that survived filtering, before dedup.
	Matched int

	// TargetYearHit reports whether observed target-year ranks were used.
	TargetYearHit bool
}

// Empty reports whether the prediction has no candidates.
func (p *Prediction) Empty() bool {
	return p == nil || len(p.Candidates) == 0
}

// Predict filters records and forecasts a closing rank per group.
// A blank program yields an empty prediction.
func Predict(records []dataset.RankRecord, f Filters, targetYear int) *Prediction {
	f = f.WithImpliedCategory()
	if f.Program == "" {
		return &Prediction{}
	}

	survivors, level := Cascade(records, f)
	pred := &Prediction{Level: level, Matched: len(survivors)}
	if len(survivors) == 0 {
		return pred
	}

	latest := LatestRounds(survivors)

	var observed []dataset.RankRecord
	for i := range latest {
		if latest[i].Year == targetYear {
			observed = append(observed, latest[i])
		}
	}
	if len(observed) > 0 {
		pred.TargetYearHit = true
		pred.Candidates = observedCandidates(observed)
		return pred
	}

	for _, g := range ForecastGroups(latest) {
		pred.Candidates = append(pred.Candidates, Candidate{
			Institute:            g.Key.Institute,
			Program:              g.Key.Program,
			Stream:               g.Key.Stream,
			SeatType:             g.LatestSeatType,
			Quota:                g.Key.Quota,
			Category:             g.Key.Category,
			District:             g.LatestDistrict,
			OpeningRank:          g.LatestOpening,
			PredictedClosingRank: dataset.Some(g.Predicted),
		})
	}
	return pred
}

type dedupKey struct {
	year      int
	institute string
	stream    string
	quota     string
	category  string
}

// LatestRounds keeps, per (year, institute, stream, quota, category), the row
// with the highest round. Ties keep the earlier row. The result is ordered by
// round descending.
func LatestRounds(records []dataset.RankRecord) []dataset.RankRecord {
	sorted := make([]dataset.RankRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Round > sorted[j].Round })

	seen := make(map[dedupKey]struct{}, len(sorted))
	out := sorted[:0]
	for _, r := range sorted {
		k := dedupKey{r.Year, r.Institute, r.Stream, r.Quota, r.Category}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// observedCandidates turns target-year rows into candidates ordered by
// closing rank, nulls last.
func observedCandidates(rows []dataset.RankRecord) []Candidate {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].ClosingRank, rows[j].ClosingRank
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Valid && a.Value < b.Value
	})

	out := make([]Candidate, len(rows))
	for i := range rows {
		r := &rows[i]
		out[i] = Candidate{
			Institute:            r.Institute,
			Program:              r.Program,
			Stream:               r.Stream,
			SeatType:             r.SeatType,
			Quota:                r.Quota,
			Category:             r.Category,
			District:             r.District,
			OpeningRank:          r.OpeningRank,
			PredictedClosingRank: r.ClosingRank,
		}
	}
	return out
}
