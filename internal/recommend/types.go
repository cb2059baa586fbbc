// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package recommend

import (
	"errors"

	"github.com/tomtom215/collegerank/internal/recommend/selector"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

var (
	// ErrInvalidRank is reported when the rank is not a finite number.
	ErrInvalidRank = errors.New("invalid rank")

	// ErrNoData is reported when the filter cascade finds no rows.
	ErrNoData = errors.New("no historical data")

	// ErrBelowThreshold is reported when no forecast meets the rank.
	ErrBelowThreshold = errors.New("no candidate meets the rank threshold")

	// ErrQualityFiltered is reported when the caller's quality filters
	// remove every candidate.
	ErrQualityFiltered = errors.New("quality filters removed all candidates")
)

// Result messages.
const (
	msgInvalidRank     = "Invalid value for user_rank."
	msgNoData          = "No historical data found for the specified filters."
	msgBelowThreshold  = "No colleges found with a predicted closing rank ≥ %s. Consider increasing your expected rank (higher number) or broadening filters."
	msgQualityFiltered = "Quality filters removed all candidates. Try lowering min CTC/score or broadening other filters."
	msgSuccess         = "Top college recommendations based on rank, quality and association-rule boosting:"
)

// Request is one recommendation query.
type Request struct {
	// Rank is the candidate's expected rank. It must parse as a finite number.
	Rank string

	// Program is required; an empty program yields a no-data result.
	Program string

	// Optional filters. Empty means unconstrained.
	Stream   string
	Quota    string
	Category string
	Location string

	// Quality thresholds. Zero or negative disables a threshold.
	MinCTC             float64
	MinPlacementsScore float64

	// TargetYear selects same-year rows when they exist. Zero means the
	// configured default.
	TargetYear int

	// TopN caps the number of records returned. Zero means the configured
	// default.
	TopN int
}

// Record is one recommended (institute, program) row.
type Record struct {
	Institute string `json:"Institute"`
	Program   string `json:"Program"`
	Stream    string `json:"Stream"`
	SeatType  string `json:"Seat Type"`
	Quota     string `json:"Quota"`
	Category  string `json:"Category"`

	OpeningRank float64 `json:"Opening Rank"`
	// ClosingRank is the predicted closing rank.
	ClosingRank float64 `json:"Closing Rank"`

	District  string `json:"District"`
	Location  string `json:"Location"`
	Website   string `json:"Website"`
	LogoImage string `json:"logo_image"`
	Picture   string `json:"Picture"`

	AverageCTC    float64 `json:"average_ctc"`
	MedianCTC     float64 `json:"median_ctc"`
	HighestCTC    float64 `json:"highest_ctc"`
	TopRecruiter  string  `json:"top recruiter"`
	JobTitle      string  `json:"job_title"`
	InstituteRank float64 `json:"institute_rank"`

	Rating              float64 `json:"rating"`
	SentimentScore      float64 `json:"sentiment_score"`
	MessScore           float64 `json:"mess_score"`
	ProfessorScore      float64 `json:"professor_score"`
	CampusScore         float64 `json:"campus_score"`
	PlacementScore      float64 `json:"placement_score"`
	InfrastructureScore float64 `json:"infrastructure_score"`
	OverallAspectScore  float64 `json:"overall_aspect_score"`
}

// Result is the outcome of Recommend. Data is never nil.
type Result struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Data    []Record `json:"data"`

	// Err wraps the sentinel behind an error or warning status.
	Err error `json:"-"`

	// Trace describes how the result was produced.
	Trace Trace `json:"-"`
}

// Trace records the pipeline decisions behind a Result.
type Trace struct {
	// Level is the filter cascade level that produced candidates.
	Level string

	// Candidates counts rows after each pipeline stage.
	Predicted    int
	Qualified    int
	AfterQuality int

	// Model is the ranking model applied to the final ordering.
	Model     string
	Selection *selector.Selection
}

// SortOption is a presentation ordering offered to clients.
type SortOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SortOptions lists the orderings a client may apply to result records.
var SortOptions = []SortOption{
	{Value: "Predicted Closing Rank", Label: "Predicted Closing Rank (asc)"},
	{Value: "Max Average CTC", Label: "Max Average CTC (desc)"},
	{Value: "placement_score", Label: "Placement Score (desc)"},
	{Value: "overall_aspect_score", Label: "Overall Score (desc)"},
	{Value: "professor_score", Label: "Professor Score (desc)"},
	{Value: "mess_score", Label: "Mess Score (desc)"},
}

// Metadata lists the filter values present in the corpus.
type Metadata struct {
	Programs    []string     `json:"programs"`
	Streams     []string     `json:"streams"`
	Quotas      []string     `json:"quotas"`
	Categories  []string     `json:"categories"`
	Locations   []string     `json:"locations"`
	SortOptions []SortOption `json:"sort_options"`
}

// TopInstitute is one entry of the top-ranked institute list.
type TopInstitute struct {
	Rank      int    `json:"rank"`
	Institute string `json:"Institute"`
	Website   string `json:"Website"`
	Picture   string `json:"Picture"`
	District  string `json:"District"`
}
