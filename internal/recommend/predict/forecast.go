// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package predict

import (
	"cmp"
	"slices"
	"sort"

	"github.com/tomtom215/collegerank/internal/dataset"
)

// MinRank is the forecast floor. Ranks are 1-indexed.
const MinRank = 1.0

// recentYears is how many of the latest closing ranks feed the forecast.
const recentYears = 2

// GroupKey identifies a forecast group.
type GroupKey struct {
	Institute string
	Program   string
	Stream    string
	Quota     string
	Category  string
}

// Compare orders keys field by field.
func (k GroupKey) Compare(o GroupKey) int {
	return cmp.Or(
		cmp.Compare(k.Institute, o.Institute),
		cmp.Compare(k.Program, o.Program),
		cmp.Compare(k.Stream, o.Stream),
		cmp.Compare(k.Quota, o.Quota),
		cmp.Compare(k.Category, o.Category),
	)
}

func keyOf(r *dataset.RankRecord) GroupKey {
	return GroupKey{
		Institute: r.Institute,
		Program:   r.Program,
		Stream:    r.Stream,
		Quota:     r.Quota,
		Category:  r.Category,
	}
}

// Group is the forecast for one GroupKey.
type Group struct {
	Key GroupKey

	// Predicted is the mean of the most recent closing ranks, at least MinRank.
	Predicted float64

	// Latest* come from the group's most recent row, whether or not that row
	// had a closing rank.
	LatestClosing  dataset.Float
	LatestOpening  dataset.Float
	LatestSeatType string
	LatestDistrict string
}

// ForecastGroups groups records by GroupKey and forecasts each group. Groups
// with no valid closing rank are dropped. The result is ordered by key.
//
// Within a group, rows from the same year keep their input order, so the
// first of them counts as the more recent.
func ForecastGroups(records []dataset.RankRecord) []Group {
	index := map[GroupKey][]int{}
	var keys []GroupKey
	for i := range records {
		k := keyOf(&records[i])
		if _, ok := index[k]; !ok {
			keys = append(keys, k)
		}
		index[k] = append(index[k], i)
	}
	slices.SortFunc(keys, GroupKey.Compare)

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		rows := make([]*dataset.RankRecord, len(index[k]))
		for j, i := range index[k] {
			rows[j] = &records[i]
		}
		g, ok := forecast(k, rows)
		if ok {
			groups = append(groups, g)
		}
	}
	return groups
}

func forecast(key GroupKey, rows []*dataset.RankRecord) (Group, bool) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Year > rows[j].Year })

	var recent []float64
	for _, r := range rows {
		if r.ClosingRank.Valid {
			recent = append(recent, r.ClosingRank.Value)
			if len(recent) == recentYears {
				break
			}
		}
	}
	if len(recent) == 0 {
		return Group{}, false
	}

	latest := rows[0]
	return Group{
		Key:            key,
		Predicted:      Forecast(recent),
		LatestClosing:  latest.ClosingRank,
		LatestOpening:  latest.OpeningRank,
		LatestSeatType: latest.SeatType,
		LatestDistrict: latest.District,
	}, true
}

// Forecast returns the arithmetic mean of ranks floored at MinRank.
// It returns MinRank for an empty slice.
func Forecast(ranks []float64) float64 {
	if len(ranks) == 0 {
		return MinRank
	}
	var sum float64
	for _, r := range ranks {
		sum += r
	}
	return max(MinRank, sum/float64(len(ranks)))
}
