// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package dataset

import "strconv"

// Float is a nullable float64. The zero value is null.
type Float struct {
	Value float64
	Valid bool
}

// Some returns a valid Float holding v.
func Some(v float64) Float {
	return Float{Value: v, Valid: true}
}

// OrZero returns the value, or 0 when null.
func (f Float) OrZero() float64 {
	if !f.Valid {
		return 0
	}
	return f.Value
}

// String renders the value for CSV output; null renders as an empty string.
func (f Float) String() string {
	if !f.Valid {
		return ""
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

// RankRecord is one historical admission-round observation.
//
// Text fields are already normalized (see CleanKey). Opening and closing
// ranks are not guaranteed to satisfy opening <= closing.
type RankRecord struct {
	// Year comes from the snapshot file name. Zero when it could not be parsed.
	Year int

	// Round is the counselling round. Non-numeric rounds are stored as 0.
	Round int

	Institute string
	Program   string
	Stream    string
	SeatType  string
	Quota     string
	Category  string

	OpeningRank Float
	ClosingRank Float

	// District is joined from the institute reference table; empty when unmatched.
	District string
}

// InstituteProfile holds reference attributes for an institute.
// Institute and District are normalized; the remaining fields are kept as
// written in college.csv (trimmed) because they are display values.
type InstituteProfile struct {
	Institute string
	District  string
	Location  string
	Website   string
	LogoImage string
	Picture   string
}

// Corpus is the normalized, district-joined rank table plus the institute
// profiles it was joined against. A Corpus is never mutated after Normalize
// returns it.
type Corpus struct {
	Records  []RankRecord
	Profiles map[string]InstituteProfile

	// Years lists the snapshot years that contributed rows, ascending.
	Years []int

	// HasDistricts reports whether a college table was available for the join.
	HasDistricts bool
}

// Profile returns the profile for a normalized institute name.
func (c *Corpus) Profile(institute string) (InstituteProfile, bool) {
	p, ok := c.Profiles[institute]
	return p, ok
}

// Len returns the number of rank records.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Records)
}
