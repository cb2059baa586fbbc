// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package recommend

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/collegerank/internal/logging"
	"github.com/tomtom215/collegerank/internal/metrics"
	"github.com/tomtom215/collegerank/internal/quality"
	"github.com/tomtom215/collegerank/internal/recommend/boost"
	"github.com/tomtom215/collegerank/internal/recommend/predict"
	"github.com/tomtom215/collegerank/internal/recommend/selector"
)

// qualityFilterLimit bounds the candidates kept by the quality filter.
const qualityFilterLimit = 10

// candidate is one row moving through the pipeline.
type candidate struct {
	predict.Candidate

	predicted float64
	filter    quality.FilterValues

	boost float64
	prob  float64
}

// Recommend runs the full pipeline for one request. Domain failures are
// reported through the Result; the error is non-nil only when ctx is done.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	res := e.recommend(ctx, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metrics.RecordRecommendation(res.Status, time.Since(start))

	logger := e.logger
	if id := logging.RequestIDFromContext(ctx); id != "" {
		logger = logger.With().Str("request_id", id).Logger()
	}
	event := logger.Info()
	if res.Status != StatusSuccess {
		event = logger.Debug().AnErr("reason", res.Err)
	}
	if sel := res.Trace.Selection; sel != nil {
		event = event.
			Float64("heuristic_accuracy", sel.Heuristic.Accuracy).
			Float64("tree_accuracy", sel.Tree.Accuracy).
			Str("selector_reason", sel.Reason)
	}
	event.
		Str("status", res.Status).
		Str("program", req.Program).
		Str("level", res.Trace.Level).
		Int("predicted", res.Trace.Predicted).
		Int("qualified", res.Trace.Qualified).
		Int("after_quality", res.Trace.AfterQuality).
		Str("model", res.Trace.Model).
		Int("results", len(res.Data)).
		Dur("duration", time.Since(start)).
		Msg("recommendation completed")

	return res, nil
}

func (e *Engine) recommend(ctx context.Context, req Request) *Result {
	rank, err := ParseRank(req.Rank)
	if err != nil {
		return failure(StatusError, msgInvalidRank, err)
	}

	targetYear := req.TargetYear
	if targetYear == 0 {
		targetYear = e.config.Recommend.DefaultTargetYear
	}

	filters := predict.NewFilters(req.Program, req.Stream, req.Quota, req.Category, req.Location)
	prediction := predict.Predict(e.corpus.Records, filters, targetYear)
	if prediction.Empty() {
		return failure(StatusError, msgNoData, ErrNoData)
	}

	trace := Trace{Level: prediction.Level.String(), Predicted: len(prediction.Candidates)}
	metrics.RecordCascadeLevel(trace.Level)

	// Rank threshold.
	cands := make([]candidate, 0, len(prediction.Candidates))
	for _, c := range prediction.Candidates {
		if c.PredictedClosingRank.Valid && c.PredictedClosingRank.Value >= rank {
			cands = append(cands, candidate{Candidate: c, predicted: c.PredictedClosingRank.Value})
		}
	}
	trace.Qualified = len(cands)
	if len(cands) == 0 {
		res := failure(StatusError, fmt.Sprintf(msgBelowThreshold, formatRank(rank)), ErrBelowThreshold)
		res.Trace = trace
		return res
	}
	slices.SortStableFunc(cands, func(a, b candidate) int { return cmp.Compare(a.predicted, b.predicted) })

	// Quality merge and optional hard filter.
	for i := range cands {
		cands[i].filter = e.quality.Filter(cands[i].Institute, cands[i].Program)
	}
	if req.MinCTC > 0 || req.MinPlacementsScore > 0 {
		cands = filterByQuality(cands, req.MinCTC, req.MinPlacementsScore)
	}
	trace.AfterQuality = len(cands)
	if len(cands) == 0 {
		res := failure(StatusWarning, msgQualityFiltered, ErrQualityFiltered)
		res.Trace = trace
		return res
	}

	// Rule boosts, keyed by (institute, program).
	boostCands := make([]boost.Candidate, len(cands))
	for i := range cands {
		c := &cands[i]
		profile, _ := e.corpus.Profile(c.Institute)
		boostCands[i] = boost.Candidate{
			Key: boost.Key{Institute: c.Institute, Program: c.Program},
			Attributes: boost.Attributes{
				Program:  c.Program,
				Stream:   c.Stream,
				Quota:    c.Quota,
				Category: c.Category,
				District: profile.District,
			},
		}
	}
	user := boost.Attributes{
		Program:  req.Program,
		Stream:   req.Stream,
		Quota:    req.Quota,
		Category: req.Category,
		District: req.Location,
	}
	boosts := boost.Compute(e.rules, user, boostCands)
	for i := range cands {
		cands[i].boost = boosts[boostCands[i].Key]
	}

	// Model ranking.
	sel := e.selector.Select(ctx, rank)
	trace.Model = sel.Model
	trace.Selection = sel
	metrics.RecordModelSelection(sel.Model)
	if sel.UseTree() {
		for i := range cands {
			cands[i].prob = sel.Probability(cands[i].Key(), cands[i].predicted)
		}
	}
	sortCandidates(cands, sel.UseTree())

	limit := min(e.config.Recommend.MaxResults, e.topN(req.TopN))
	if len(cands) > limit {
		cands = cands[:limit]
	}

	data := make([]Record, len(cands))
	for i := range cands {
		data[i] = e.record(&cands[i])
	}

	return &Result{Status: StatusSuccess, Message: msgSuccess, Data: data, Trace: trace}
}

func (e *Engine) topN(n int) int {
	if n <= 0 {
		return e.config.Recommend.DefaultTopN
	}
	return n
}

func failure(status, message string, err error) *Result {
	return &Result{Status: status, Message: message, Data: []Record{}, Err: err}
}

// ParseRank parses a rank as a finite number.
func ParseRank(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRank, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidRank, s)
	}
	return v, nil
}

// formatRank renders a rank with at least one decimal place, so 1000 reads
// as "1000.0".
func formatRank(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e16 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// filterByQuality keeps candidates meeting the active thresholds, ordered by
// compensation, then overall review score, then predicted rank. Only the
// first row of each forecast group is kept.
func filterByQuality(cands []candidate, minCTC, minPlacements float64) []candidate {
	kept := make([]candidate, 0, len(cands))
	for _, c := range cands {
		if minCTC > 0 && c.filter.MaxAverageCTC < minCTC {
			continue
		}
		if minPlacements > 0 && c.filter.Placements < minPlacements {
			continue
		}
		kept = append(kept, c)
	}

	slices.SortStableFunc(kept, func(a, b candidate) int {
		return cmp.Or(
			cmp.Compare(b.filter.MaxAverageCTC, a.filter.MaxAverageCTC),
			cmp.Compare(b.filter.Overall, a.filter.Overall),
			cmp.Compare(a.predicted, b.predicted),
		)
	})

	seen := make(map[predict.GroupKey]struct{}, len(kept))
	out := kept[:0]
	for _, c := range kept {
		k := c.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
		if len(out) == qualityFilterLimit {
			break
		}
	}
	return out
}

// sortCandidates orders by boost, then tree probability when the tree is in
// use, then predicted rank.
func sortCandidates(cands []candidate, useProb bool) {
	slices.SortStableFunc(cands, func(a, b candidate) int {
		if c := cmp.Compare(b.boost, a.boost); c != 0 {
			return c
		}
		if useProb {
			if c := cmp.Compare(b.prob, a.prob); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.predicted, b.predicted)
	})
}

// record assembles the output row, joining profile, placement and review
// data. Missing numbers are 0 and missing text is empty.
func (e *Engine) record(c *candidate) Record {
	r := Record{
		Institute:   c.Institute,
		Program:     c.Program,
		Stream:      c.Stream,
		SeatType:    c.SeatType,
		Quota:       c.Quota,
		Category:    c.Category,
		OpeningRank: c.OpeningRank.OrZero(),
		ClosingRank: c.predicted,
	}

	if p, ok := e.corpus.Profile(c.Institute); ok {
		r.District = p.District
		r.Location = p.Location
		r.Website = p.Website
		r.LogoImage = p.LogoImage
		r.Picture = p.Picture
	}

	if p, ok := e.quality.Placement(c.Institute, c.Program); ok {
		r.AverageCTC = p.AverageCTC.OrZero()
		r.MedianCTC = p.MedianCTC.OrZero()
		r.HighestCTC = p.HighestCTC.OrZero()
		r.TopRecruiter = p.TopRecruiter
		r.JobTitle = p.JobTitle
		r.InstituteRank = p.InstituteRank.OrZero()
	}

	if rv, ok := e.quality.Review(c.Institute); ok {
		r.Rating = rv.Rating.OrZero()
		r.SentimentScore = rv.Sentiment.OrZero()
		r.MessScore = rv.Mess.OrZero()
		r.ProfessorScore = rv.Professor.OrZero()
		r.CampusScore = rv.Campus.OrZero()
		r.PlacementScore = rv.Placements.OrZero()
		r.InfrastructureScore = rv.Infrastructure.OrZero()
		r.OverallAspectScore = rv.Overall.OrZero()
	}

	return r
}

// Selection exposes a model comparison at a rank threshold for diagnostics.
func (e *Engine) Selection(ctx context.Context, threshold float64) *selector.Selection {
	return e.selector.Select(ctx, threshold)
}
