// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package rules

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/tomtom215/collegerank/internal/dataset"
)

// Item attribute prefixes.
const (
	AttrProgram  = "program"
	AttrStream   = "stream"
	AttrQuota    = "quota"
	AttrCategory = "category"
	AttrDistrict = "district"
)

// ItemSeparator joins the items of an antecedent in the rules file.
const ItemSeparator = ";"

// keySep joins itemset members in count-map keys. It cannot occur in cleaned
// CSV values.
const keySep = "\x00"

// ctxCheckEvery bounds how many transactions are counted between
// cancellation checks.
const ctxCheckEvery = 4096

// Rule is one association rule with a single-item consequent.
type Rule struct {
	// Antecedent items, sorted.
	Antecedent []string
	// Consequent items, sorted. Mined rules always have exactly one.
	Consequent []string

	Support    float64
	Confidence float64
	Lift       float64
}

// AntecedentString joins the antecedent for storage.
func (r *Rule) AntecedentString() string {
	return strings.Join(r.Antecedent, ItemSeparator)
}

// ConsequentString joins the consequent for storage.
func (r *Rule) ConsequentString() string {
	return strings.Join(r.Consequent, ItemSeparator)
}

// Config controls mining.
type Config struct {
	// MinSupport is the minimum fraction of transactions an itemset must
	// appear in to be frequent.
	MinSupport float64

	// MaxItemsetSize bounds the itemsets counted.
	MaxItemsetSize int
}

// DefaultConfig returns the standard mining parameters.
func DefaultConfig() Config {
	return Config{
		MinSupport:     0.02,
		MaxItemsetSize: 3,
	}
}

// Validate checks the mining parameters.
func (c Config) Validate() error {
	if c.MinSupport <= 0 || c.MinSupport > 1 {
		return errors.New("rules.min_support must be in (0, 1]")
	}
	if c.MaxItemsetSize < 2 {
		return errors.New("rules.max_itemset_size must be at least 2")
	}
	return nil
}

// Item formats an attribute value as a transaction item. ItemSeparator
// inside value becomes a comma so the item survives the rules file.
func Item(attr, value string) string {
	return attr + "=" + strings.ReplaceAll(value, ItemSeparator, ",")
}

// Transaction returns the sorted items of one rank row. Empty values are
// skipped, so the result may be empty.
func Transaction(r *dataset.RankRecord) []string {
	items := make([]string, 0, 5)
	for _, kv := range [...][2]string{
		{AttrProgram, r.Program},
		{AttrStream, r.Stream},
		{AttrQuota, r.Quota},
		{AttrCategory, r.Category},
		{AttrDistrict, r.District},
	} {
		if v := strings.TrimSpace(kv[1]); v != "" {
			items = append(items, Item(kv[0], strings.ToLower(v)))
		}
	}
	slices.Sort(items)
	return slices.Compact(items)
}

// Mine derives rules from records. Transactions with no items do not count
// toward the support denominator.
func Mine(ctx context.Context, records []dataset.RankRecord, cfg Config) ([]Rule, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	counts := map[string]int{}
	n := 0
	for i := range records {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("mining canceled: %w", err)
			}
		}
		items := Transaction(&records[i])
		if len(items) == 0 {
			continue
		}
		n++
		combinations(items, cfg.MaxItemsetSize, func(set []string) {
			counts[strings.Join(set, keySep)]++
		})
	}
	if n == 0 {
		return []Rule{}, nil
	}

	total := float64(n)
	support := make(map[string]float64, len(counts))
	for k, c := range counts {
		if s := float64(c) / total; s >= cfg.MinSupport {
			support[k] = s
		}
	}

	rules := make([]Rule, 0, len(support))
	for k, supAB := range support {
		set := strings.Split(k, keySep)
		if len(set) < 2 {
			continue
		}
		for i, consequent := range set {
			antecedent := make([]string, 0, len(set)-1)
			antecedent = append(antecedent, set[:i]...)
			antecedent = append(antecedent, set[i+1:]...)

			supA, okA := support[strings.Join(antecedent, keySep)]
			supB, okB := support[consequent]
			if !okA || !okB {
				continue
			}

			var confidence, lift float64
			if supA > 0 {
				confidence = supAB / supA
			}
			if supB > 0 {
				lift = confidence / supB
			}
			rules = append(rules, Rule{
				Antecedent: antecedent,
				Consequent: []string{consequent},
				Support:    round6(supAB),
				Confidence: round6(confidence),
				Lift:       round6(lift),
			})
		}
	}

	SortRules(rules)
	return rules, nil
}

// SortRules orders rules by confidence then support, both descending, with
// antecedent and consequent text as tie-breakers.
func SortRules(rules []Rule) {
	slices.SortStableFunc(rules, func(a, b Rule) int {
		return cmp.Or(
			cmp.Compare(b.Confidence, a.Confidence),
			cmp.Compare(b.Support, a.Support),
			cmp.Compare(a.AntecedentString(), b.AntecedentString()),
			cmp.Compare(a.ConsequentString(), b.ConsequentString()),
		)
	})
}

// combinations calls fn with every subset of sorted items of size 1..maxSize,
// preserving item order. fn must not retain the slice.
func combinations(items []string, maxSize int, fn func([]string)) {
	buf := make([]string, 0, maxSize)
	var walk func(start int)
	walk = func(start int) {
		for i := start; i < len(items); i++ {
			buf = append(buf, items[i])
			fn(buf)
			if len(buf) < maxSize {
				walk(i + 1)
			}
			buf = buf[:len(buf)-1]
		}
	}
	walk(0)
}

func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
