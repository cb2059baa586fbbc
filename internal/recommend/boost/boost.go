// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

// Package boost turns mined association rules into an additive re-ranking
// score for recommendation candidates.
//
// A rule applies when every antecedent item is among the caller's own filter
// values. An applicable rule adds confidence*support to each (institute,
// program) whose candidate rows contain the rule's consequent.
package boost

import (
	"github.com/tomtom215/collegerank/internal/dataset"
	"github.com/tomtom215/collegerank/internal/recommend/rules"
)

// Key identifies the unit a boost is credited to.
type Key struct {
	Institute string
	Program   string
}

// Attributes are the categorical values of one candidate row.
type Attributes struct {
	Program  string
	Stream   string
	Quota    string
	Category string
	District string
}

// Items returns the non-empty attributes as rule items.
func (a Attributes) Items() map[string]struct{} {
	items := make(map[string]struct{}, 5)
	for _, kv := range [...][2]string{
		{rules.AttrProgram, a.Program},
		{rules.AttrStream, a.Stream},
		{rules.AttrQuota, a.Quota},
		{rules.AttrCategory, a.Category},
		{rules.AttrDistrict, a.District},
	} {
		if v := dataset.CleanKey(kv[1]); v != "" {
			items[rules.Item(kv[0], v)] = struct{}{}
		}
	}
	return items
}

// Candidate pairs a boost key with the attributes of one candidate row.
type Candidate struct {
	Key        Key
	Attributes Attributes
}

// Compute returns the boost per key. Keys with no applicable rule are absent.
// user holds the caller's raw filter values; blank ones are ignored.
func Compute(ruleset []rules.Rule, user Attributes, candidates []Candidate) map[Key]float64 {
	boosts := map[Key]float64{}
	if len(ruleset) == 0 || len(candidates) == 0 {
		return boosts
	}

	userItems := user.Items()
	if len(userItems) == 0 {
		return boosts
	}

	keys := make([]Key, 0, len(candidates))
	itemsByKey := map[Key][]map[string]struct{}{}
	for _, c := range candidates {
		if _, ok := itemsByKey[c.Key]; !ok {
			keys = append(keys, c.Key)
		}
		itemsByKey[c.Key] = append(itemsByKey[c.Key], c.Attributes.Items())
	}

	for i := range ruleset {
		r := &ruleset[i]
		if len(r.Antecedent) == 0 || !subset(r.Antecedent, userItems) {
			continue
		}
		value := r.Confidence * r.Support
		for _, k := range keys {
			for _, items := range itemsByKey[k] {
				if subset(r.Consequent, items) {
					boosts[k] += value
					break
				}
			}
		}
	}
	return boosts
}

func subset(items []string, set map[string]struct{}) bool {
	for _, it := range items {
		if _, ok := set[it]; !ok {
			return false
		}
	}
	return true
}
