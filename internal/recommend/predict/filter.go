// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package predict

import (
	"strings"

	"github.com/tomtom215/collegerank/internal/dataset"
)

// TuitionFeeWaiver is the category implied by a "tfw" program when the caller
// gave no category.
const TuitionFeeWaiver = "tuition fee waiver"

// Filters are the caller's normalized match values. Empty means "any".
type Filters struct {
	Program  string
	Stream   string
	Quota    string
	Category string
	District string
}

// NewFilters normalizes raw caller input.
func NewFilters(program, stream, quota, category, district string) Filters {
	return Filters{
		Program:  dataset.CleanKey(program),
		Stream:   dataset.CleanKey(stream),
		Quota:    dataset.CleanKey(quota),
		Category: dataset.CleanKey(category),
		District: dataset.CleanKey(district),
	}
}

// WithImpliedCategory returns f with the tuition-fee-waiver category filled in
// when the program names a TFW seat and no category was given.
func (f Filters) WithImpliedCategory() Filters {
	if f.Program != "" && f.Category == "" && strings.Contains(f.Program, "tfw") {
		f.Category = TuitionFeeWaiver
	}
	return f
}

// Level identifies which relaxation of the filter set produced the survivors.
type Level int

// Cascade levels, tried in order.
const (
	// LevelNone means every level came back empty.
	LevelNone Level = iota
	// LevelFull applies program, stream, quota, district and category.
	LevelFull
	// LevelWithoutCategory drops the category constraint.
	LevelWithoutCategory
	// LevelWithoutQuota drops quota and category but keeps district.
	LevelWithoutQuota
	// LevelProgramStream keeps only program and stream.
	LevelProgramStream
	// LevelProgramOnly keeps only program.
	LevelProgramOnly
	// LevelProgramSubstring matches program as a raw substring.
	LevelProgramSubstring
)

// String returns the level name used in logs and metrics.
func (l Level) String() string {
	switch l {
	case LevelFull:
		return "full"
	case LevelWithoutCategory:
		return "without_category"
	case LevelWithoutQuota:
		return "without_quota"
	case LevelProgramStream:
		return "program_stream"
	case LevelProgramOnly:
		return "program_only"
	case LevelProgramSubstring:
		return "program_substring"
	default:
		return "none"
	}
}

// Levels lists the cascade in the order it is tried.
var Levels = []Level{
	LevelFull,
	LevelWithoutCategory,
	LevelWithoutQuota,
	LevelProgramStream,
	LevelProgramOnly,
	LevelProgramSubstring,
}

// relax returns the filter set applied at level l.
func (f Filters) relax(l Level) Filters {
	switch l {
	case LevelWithoutCategory:
		f.Category = ""
	case LevelWithoutQuota:
		f.Quota, f.Category = "", ""
	case LevelProgramStream:
		f = Filters{Program: f.Program, Stream: f.Stream}
	case LevelProgramOnly, LevelProgramSubstring:
		f = Filters{Program: f.Program}
	}
	return f
}

// Cascade applies the filter levels in order and returns the first non-empty
// result together with the level that produced it.
func Cascade(records []dataset.RankRecord, f Filters) ([]dataset.RankRecord, Level) {
	for _, level := range Levels {
		var out []dataset.RankRecord
		if level == LevelProgramSubstring {
			if f.Program == "" {
				continue
			}
			out = where(records, func(r *dataset.RankRecord) bool {
				return strings.Contains(r.Program, f.Program)
			})
		} else {
			out = Apply(records, f.relax(level))
		}
		if len(out) > 0 {
			return out, level
		}
	}
	return nil, LevelNone
}

// Apply runs one pass of lenient matching. The program constraint always
// applies, even when it empties the set; the remaining constraints are applied
// in order stream, quota, district, category and skipped when they would
// empty the set.
func Apply(records []dataset.RankRecord, f Filters) []dataset.RankRecord {
	out := records
	if f.Program != "" {
		out = lenient(out, f.Program, programOf)
	}
	for _, c := range []struct {
		value string
		field func(*dataset.RankRecord) string
	}{
		{f.Stream, streamOf},
		{f.Quota, quotaOf},
		{f.District, districtOf},
		{f.Category, categoryOf},
	} {
		if c.value == "" {
			continue
		}
		if narrowed := lenient(out, c.value, c.field); len(narrowed) > 0 {
			out = narrowed
		}
	}
	return out
}

// lenient keeps exact matches, or substring matches when nothing is exact.
func lenient(records []dataset.RankRecord, value string, field func(*dataset.RankRecord) string) []dataset.RankRecord {
	exact := where(records, func(r *dataset.RankRecord) bool { return field(r) == value })
	if len(exact) > 0 {
		return exact
	}
	return where(records, func(r *dataset.RankRecord) bool { return strings.Contains(field(r), value) })
}

func where(records []dataset.RankRecord, keep func(*dataset.RankRecord) bool) []dataset.RankRecord {
	var out []dataset.RankRecord
	for i := range records {
		if keep(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

func programOf(r *dataset.RankRecord) string  { return r.Program }
func streamOf(r *dataset.RankRecord) string   { return r.Stream }
func quotaOf(r *dataset.RankRecord) string    { return r.Quota }
func districtOf(r *dataset.RankRecord) string { return r.District }
func categoryOf(r *dataset.RankRecord) string { return r.Category }
