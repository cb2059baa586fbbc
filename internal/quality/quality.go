// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package quality

import (
	"sort"

	"github.com/tomtom215/collegerank/internal/dataset"
)

// Placement and review source columns.
const (
	colInstitute     = "Institute"
	colProgram       = "Program"
	colCollegeName   = "college_name"
	colAverageCTC    = "average_ctc"
	colMedianCTC     = "median_ctc"
	colHighestCTC    = "highest_ctc"
	colTopRecruiters = "top_recruiters"
	colJobTitles     = "job_titles"
	colInstRank      = "inst_rank"

	// Display names after renaming.
	colTopRecruiter  = "top recruiter"
	colJobTitle      = "job_title"
	colInstituteRank = "institute_rank"
)

// Review score columns, in output order.
const (
	colRating         = "rating"
	colSentiment      = "sentiment_score"
	colMess           = "mess_score"
	colProfessor      = "professor_score"
	colCampus         = "campus_score"
	colPlacements     = "placements_score"
	colInfrastructure = "infrastructure_score"
	colOverall        = "overall_aspect_score"
)

// Key identifies a placement aggregate.
type Key struct {
	Institute string
	Program   string
}

// Placement is the aggregated placement outcome of one (institute, program).
type Placement struct {
	// AverageCTC is the maximum average compensation observed. It doubles as
	// the "Max Average CTC" quality-filter value.
	AverageCTC dataset.Float
	MedianCTC  dataset.Float
	HighestCTC dataset.Float

	TopRecruiter  string
	JobTitle      string
	InstituteRank dataset.Float
}

// Review holds the per-institute mean of every review score.
type Review struct {
	Rating         dataset.Float
	Sentiment      dataset.Float
	Mess           dataset.Float
	Professor      dataset.Float
	Campus         dataset.Float
	Placements     dataset.Float
	Infrastructure dataset.Float
	Overall        dataset.Float
}

// Ranking is one placement row carrying a numeric institute rank.
type Ranking struct {
	Rank float64

	// Institute is the normalized key; DisplayName keeps the original spelling.
	Institute   string
	DisplayName string
}

// Aggregates is the immutable result of Build.
type Aggregates struct {
	placements map[Key]Placement
	reviews    map[string]Review
	rankings   []Ranking
}

// Build aggregates the placement and review tables. Either may be nil.
func Build(placement, reviews *dataset.Table) *Aggregates {
	return &Aggregates{
		placements: aggregatePlacements(placement),
		reviews:    aggregateReviews(reviews),
		rankings:   collectRankings(placement),
	}
}

// Placement returns the placement aggregate for an (institute, program) pair.
func (a *Aggregates) Placement(institute, program string) (Placement, bool) {
	if a == nil {
		return Placement{}, false
	}
	p, ok := a.placements[Key{Institute: institute, Program: program}]
	return p, ok
}

// Review returns the review aggregate for an institute.
func (a *Aggregates) Review(institute string) (Review, bool) {
	if a == nil {
		return Review{}, false
	}
	r, ok := a.reviews[institute]
	return r, ok
}

// MaxAverageCTC returns the quality-filter compensation value, 0 when unknown.
func (a *Aggregates) MaxAverageCTC(institute, program string) float64 {
	p, _ := a.Placement(institute, program)
	return p.AverageCTC.OrZero()
}

// FilterScores returns the placements and overall review means used by the
// quality filter, 0 when unknown.
func (a *Aggregates) FilterScores(institute string) (placements, overall float64) {
	r, _ := a.Review(institute)
	return r.Placements.OrZero(), r.Overall.OrZero()
}

// FilterValues are the quality-filter inputs of one candidate.
type FilterValues struct {
	MaxAverageCTC float64
	Placements    float64
	Overall       float64
}

// Filter returns the quality-filter values of an (institute, program) pair.
// Review scores are keyed by placement rows: when any placement data is
// loaded, a pair without placement data gets zero review scores as well.
func (a *Aggregates) Filter(institute, program string) FilterValues {
	if a == nil {
		return FilterValues{}
	}
	if len(a.placements) > 0 {
		p, ok := a.placements[Key{Institute: institute, Program: program}]
		if !ok {
			return FilterValues{}
		}
		v := FilterValues{MaxAverageCTC: p.AverageCTC.OrZero()}
		v.Placements, v.Overall = a.FilterScores(institute)
		return v
	}
	var v FilterValues
	v.Placements, v.Overall = a.FilterScores(institute)
	return v
}

// Rankings returns every placement row with a numeric institute rank, sorted
// ascending by rank. Rows with equal rank keep file order.
func (a *Aggregates) Rankings() []Ranking {
	if a == nil {
		return nil
	}
	out := make([]Ranking, len(a.rankings))
	copy(out, a.rankings)
	return out
}

// Sizes reports how many placement and review aggregates were built.
func (a *Aggregates) Sizes() (placements, reviews int) {
	if a == nil {
		return 0, 0
	}
	return len(a.placements), len(a.reviews)
}

func aggregatePlacements(t *dataset.Table) map[Key]Placement {
	out := map[Key]Placement{}
	if t.Len() == 0 || !t.Has(colInstitute) {
		return out
	}
	t.Rename(map[string]string{
		colTopRecruiters: colTopRecruiter,
		colJobTitles:     colJobTitle,
		colInstRank:      colInstituteRank,
	})

	for i := range t.Rows {
		key := Key{
			Institute: dataset.CleanKey(t.Get(i, colInstitute)),
			Program:   dataset.CleanKey(t.Get(i, colProgram)),
		}
		p := out[key]
		p.AverageCTC = maxFloat(p.AverageCTC, dataset.ParseFloat(t.Get(i, colAverageCTC)))
		p.MedianCTC = maxFloat(p.MedianCTC, dataset.ParseFloat(t.Get(i, colMedianCTC)))
		p.HighestCTC = maxFloat(p.HighestCTC, dataset.ParseFloat(t.Get(i, colHighestCTC)))
		if p.TopRecruiter == "" {
			p.TopRecruiter = dataset.CleanDisplay(t.Get(i, colTopRecruiter))
		}
		if p.JobTitle == "" {
			p.JobTitle = dataset.CleanDisplay(t.Get(i, colJobTitle))
		}
		if !p.InstituteRank.Valid {
			p.InstituteRank = dataset.ParseFloat(t.Get(i, colInstituteRank))
		}
		out[key] = p
	}
	return out
}

// mean accumulates the average of non-null values.
type mean struct {
	sum float64
	n   int
}

func (m *mean) add(f dataset.Float) {
	if f.Valid {
		m.sum += f.Value
		m.n++
	}
}

func (m mean) value() dataset.Float {
	if m.n == 0 {
		return dataset.Float{}
	}
	return dataset.Some(m.sum / float64(m.n))
}

var reviewColumns = [...]string{
	colRating, colSentiment, colMess, colProfessor,
	colCampus, colPlacements, colInfrastructure, colOverall,
}

func aggregateReviews(t *dataset.Table) map[string]Review {
	out := map[string]Review{}
	if t.Len() == 0 {
		return out
	}
	t.Rename(map[string]string{colCollegeName: colInstitute})
	if !t.Has(colInstitute) {
		return out
	}

	sums := map[string]*[len(reviewColumns)]mean{}
	for i := range t.Rows {
		inst := dataset.CleanKey(t.Get(i, colInstitute))
		acc, ok := sums[inst]
		if !ok {
			acc = &[len(reviewColumns)]mean{}
			sums[inst] = acc
		}
		for j, col := range reviewColumns {
			acc[j].add(dataset.ParseFloat(t.Get(i, col)))
		}
	}

	for inst, acc := range sums {
		out[inst] = Review{
			Rating:         acc[0].value(),
			Sentiment:      acc[1].value(),
			Mess:           acc[2].value(),
			Professor:      acc[3].value(),
			Campus:         acc[4].value(),
			Placements:     acc[5].value(),
			Infrastructure: acc[6].value(),
			Overall:        acc[7].value(),
		}
	}
	return out
}

func collectRankings(t *dataset.Table) []Ranking {
	if t.Len() == 0 {
		return nil
	}
	col := colInstRank
	if !t.Has(col) {
		col = colInstituteRank
	}

	var out []Ranking
	for i := range t.Rows {
		rank := dataset.ParseFloat(t.Get(i, col))
		if !rank.Valid {
			continue
		}
		name := dataset.CleanDisplay(t.Get(i, colInstitute))
		out = append(out, Ranking{
			Rank:        rank.Value,
			Institute:   dataset.CleanKey(name),
			DisplayName: name,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}

func maxFloat(a, b dataset.Float) dataset.Float {
	switch {
	case !b.Valid:
		return a
	case !a.Valid || b.Value > a.Value:
		return b
	default:
		return a
	}
}
