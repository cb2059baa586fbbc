// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CanonicalStream is the single label all engineering degree variants map to.
const CanonicalStream = "b.e/b. tech"

// DefaultSeatType is used when a snapshot has no Seat Type column.
const DefaultSeatType = "N/A"

// engineeringStream matches the degree spellings seen across snapshots.
// It runs before lowercasing, so it is case-sensitive.
var engineeringStream = regexp.MustCompile(`B\.E/B\.Tech.*|B\.E/B\.Arch.*|B\.Tech.*`)

// CleanKey normalizes a textual key for equality and substring matching:
// NFKC, trim, lowercase. The literal "nan" (an artifact of spreadsheet
// exports) is treated as empty.
func CleanKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
	if s == "nan" {
		return ""
	}
	return s
}

// CleanDisplay trims a display value and drops "nan".
func CleanDisplay(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

// CanonicalizeStream collapses engineering degree variants into CanonicalStream.
// Only the matched suffix is replaced; any prefix is kept.
func CanonicalizeStream(s string) string {
	return engineeringStream.ReplaceAllString(s, CanonicalStream)
}

// ParseFloat parses a numeric cell leniently. Empty, non-numeric and
// non-finite values yield a null Float.
func ParseFloat(s string) Float {
	s = strings.TrimSpace(s)
	if s == "" {
		return Float{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Float{}
	}
	return Some(v)
}

// parseRound parses a round number; anything else becomes 0.
func parseRound(s string) int {
	f := ParseFloat(s)
	if !f.Valid {
		return 0
	}
	return int(f.Value)
}
