// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/collegerank/internal/recommend"
	"github.com/tomtom215/collegerank/internal/validation"
)

// Request defaults applied when a body omits the field.
const (
	defaultTargetYear = 2026
	defaultTopN       = 10
)

// looseValue accepts a JSON string, number or boolean and keeps its text.
// Web forms send numbers as strings and scripts send them as numbers.
type looseValue struct {
	text string
	set  bool
}

func (v *looseValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = looseValue{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = looseValue{text: s, set: true}
		return nil
	}
	if len(data) > 0 && (data[0] == '{' || data[0] == '[') {
		return errors.New("expected a string or number")
	}
	*v = looseValue{text: string(data), set: true}
	return nil
}

// present reports whether the value was sent and is not blank.
func (v looseValue) present() bool {
	return v.set && strings.TrimSpace(v.text) != ""
}

// recommendBody is the raw request body. Each field has a legacy alias used
// by older form clients; the canonical name wins when both are sent.
type recommendBody struct {
	Rank     looseValue `json:"rank"`
	UserRank looseValue `json:"user_rank"`

	Program     looseValue `json:"program"`
	UserProgram looseValue `json:"user_program"`

	Stream     looseValue `json:"stream"`
	UserStream looseValue `json:"user_stream"`

	Quota     looseValue `json:"quota"`
	UserQuota looseValue `json:"user_quota"`

	Category     looseValue `json:"category"`
	UserCategory looseValue `json:"user_category"`

	Location     looseValue `json:"location"`
	UserLocation looseValue `json:"user_location"`

	MinCTC             looseValue `json:"min_ctc"`
	MinPlacementsScore looseValue `json:"min_placements_score"`
	TargetYear         looseValue `json:"target_year"`
	TopN               looseValue `json:"top_n"`
}

// RecommendPayload is a decoded and defaulted recommendation request.
type RecommendPayload struct {
	Rank     string `json:"rank" validate:"notblank"`
	Program  string `json:"program" validate:"notblank"`
	Stream   string `json:"stream" validate:"max=200"`
	Quota    string `json:"quota" validate:"max=200"`
	Category string `json:"category" validate:"max=200"`
	Location string `json:"location" validate:"max=200"`

	MinCTC             float64 `json:"min_ctc" validate:"gte=0"`
	MinPlacementsScore float64 `json:"min_placements_score" validate:"gte=0"`
	TargetYear         int     `json:"target_year" validate:"gte=1900,lte=2100"`
	TopN               int     `json:"top_n" validate:"min=1,max=1000"`
}

// Request converts the payload to an engine request.
func (p *RecommendPayload) Request() recommend.Request {
	return recommend.Request{
		Rank:               p.Rank,
		Program:            p.Program,
		Stream:             p.Stream,
		Quota:              p.Quota,
		Category:           p.Category,
		Location:           p.Location,
		MinCTC:             p.MinCTC,
		MinPlacementsScore: p.MinPlacementsScore,
		TargetYear:         p.TargetYear,
		TopN:               p.TopN,
	}
}

// decodeRecommendPayload reads a recommendation body. An empty body decodes
// as an empty object so the caller reports the missing required fields.
func decodeRecommendPayload(r io.Reader) (*RecommendPayload, error) {
	var body recommendBody
	if err := json.NewDecoder(r).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	p := &RecommendPayload{
		Rank:               strings.TrimSpace(pick(body.Rank, body.UserRank)),
		Program:            pick(body.Program, body.UserProgram),
		Stream:             pick(body.Stream, body.UserStream),
		Quota:              pick(body.Quota, body.UserQuota),
		Category:           pick(body.Category, body.UserCategory),
		Location:           pick(body.Location, body.UserLocation),
		MinCTC:             threshold(body.MinCTC),
		MinPlacementsScore: threshold(body.MinPlacementsScore),
	}

	var err error
	if p.TargetYear, err = integer(body.TargetYear, defaultTargetYear); err != nil {
		return nil, &fieldError{msg: "target_year must be a whole number"}
	}
	if p.TopN, err = integer(body.TopN, defaultTopN); err != nil {
		return nil, &fieldError{msg: "top_n must be a whole number"}
	}
	return p, nil
}

// validatePayload enforces required fields and numeric bounds.
func validatePayload(p *RecommendPayload) error {
	verr := validation.ValidateStruct(p)
	if verr == nil {
		return nil
	}
	for _, field := range verr.Fields() {
		if field == "rank" || field == "program" {
			return ErrMissingRequired
		}
	}
	return &fieldError{msg: verr.Error()}
}

// pick returns the first of primary and alias that carries a value.
func pick(primary, alias looseValue) string {
	if primary.present() {
		return primary.text
	}
	if alias.present() {
		return alias.text
	}
	return ""
}

// threshold parses a quality threshold. Unparseable or non-finite values
// disable the threshold instead of failing the request.
func threshold(v looseValue) float64 {
	if !v.present() {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// integer parses a whole number, accepting a float with no fractional part
// as sent by some JSON encoders.
func integer(v looseValue, def int) (int, error) {
	if !v.present() {
		return def, nil
	}
	text := strings.TrimSpace(v.text)
	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("not a whole number: %q", text)
	}
	return int(f), nil
}
