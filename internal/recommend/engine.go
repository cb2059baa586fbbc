// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package recommend

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/collegerank/internal/dataset"
	"github.com/tomtom215/collegerank/internal/metrics"
	"github.com/tomtom215/collegerank/internal/quality"
	"github.com/tomtom215/collegerank/internal/recommend/predict"
	"github.com/tomtom215/collegerank/internal/recommend/rules"
	"github.com/tomtom215/collegerank/internal/recommend/selector"
)

// Engine answers recommendation, metadata and top-ranked queries over one
// loaded data snapshot. It is immutable after New and safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	corpus  *dataset.Corpus
	quality *quality.Aggregates

	rules       []rules.Rule
	rulesSource rules.Source

	selector *selector.Comparator
	metadata Metadata
}

// New loads the data snapshot described by cfg and prepares every shared
// table. Missing optional files degrade features instead of failing; a
// failed rule initialization leaves the engine without boosts.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(ctx context.Context, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger = logger.With().Str("component", "recommend").Logger()
	start := time.Now()

	tables, err := dataset.Load(ctx, cfg.Data.Sources(), logger)
	if err != nil {
		return nil, fmt.Errorf("load data: %w", err)
	}

	corpus := dataset.Normalize(tables)
	if corpus.Len() == 0 {
		logger.Warn().Str("dir", cfg.Data.Dir()).Msg("master rank data is empty, recommendations will fail")
	}

	e := &Engine{
		config:  cfg,
		logger:  logger,
		corpus:  corpus,
		quality: quality.Build(tables.Placement, tables.Reviews),
	}

	if err := e.initRules(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		logger.Warn().Err(err).Msg("association rules unavailable, boosts disabled")
	}

	e.selector = selector.NewComparator(cfg.Selector, selector.SamplesFromGroups(predict.ForecastGroups(corpus.Records)), logger)
	e.metadata = buildMetadata(corpus)

	metrics.CorpusRows.Set(float64(corpus.Len()))

	placements, reviews := e.quality.Sizes()
	logger.Info().
		Int("rows", corpus.Len()).
		Ints("years", corpus.Years).
		Int("institutes", len(corpus.Profiles)).
		Int("placements", placements).
		Int("reviews", reviews).
		Int("rules", len(e.rules)).
		Str("rules_source", string(e.rulesSource)).
		Int("selector_samples", e.selector.Samples()).
		Dur("duration", time.Since(start)).
		Msg("recommendation engine ready")

	return e, nil
}

func (e *Engine) initRules(ctx context.Context) error {
	store := rules.NewStore(e.RulesPath(), e.logger)

	var (
		ruleset []rules.Rule
		source  = rules.SourceMined
		err     error
	)
	if e.config.Rules.Regenerate {
		ruleset, err = store.Regenerate(ctx, e.MineRules)
	} else {
		ruleset, source, err = store.Ensure(ctx, e.MineRules)
	}
	if err != nil {
		return fmt.Errorf("initialize rules: %w", err)
	}
	e.rules = ruleset
	e.rulesSource = source
	metrics.RecordRules(string(source), len(ruleset))
	return nil
}

// MineRules mines association rules from the engine's corpus.
func (e *Engine) MineRules(ctx context.Context) ([]rules.Rule, error) {
	return rules.Mine(ctx, e.corpus.Records, e.config.Rules.Mining())
}

// RulesPath returns the location of the persisted rules file.
func (e *Engine) RulesPath() string {
	return filepath.Join(e.config.Data.Dir(), e.config.Rules.File)
}

// Rules returns a copy of the rule set used for boosting.
func (e *Engine) Rules() []rules.Rule {
	return slices.Clone(e.rules)
}

// RulesSource reports whether rules were read from disk or mined.
func (e *Engine) RulesSource() rules.Source {
	return e.rulesSource
}

// Corpus returns the normalized rank corpus. Callers must not modify it.
func (e *Engine) Corpus() *dataset.Corpus {
	return e.corpus
}

// SelectorState returns the state of the classifier training breaker.
func (e *Engine) SelectorState() string {
	return e.selector.BreakerState()
}

// Metadata returns the filter values present in the corpus.
func (e *Engine) Metadata() Metadata {
	m := e.metadata
	m.Programs = slices.Clone(m.Programs)
	m.Streams = slices.Clone(m.Streams)
	m.Quotas = slices.Clone(m.Quotas)
	m.Categories = slices.Clone(m.Categories)
	m.Locations = slices.Clone(m.Locations)
	m.SortOptions = slices.Clone(m.SortOptions)
	return m
}

func buildMetadata(corpus *dataset.Corpus) Metadata {
	var programs, streams, quotas, categories, locations []string
	for i := range corpus.Records {
		r := &corpus.Records[i]
		programs = append(programs, r.Program)
		streams = append(streams, r.Stream)
		quotas = append(quotas, r.Quota)
		categories = append(categories, r.Category)
		if r.District != "" {
			locations = append(locations, r.District)
		}
	}
	return Metadata{
		Programs:    uniqueSorted(programs),
		Streams:     uniqueSorted(streams),
		Quotas:      uniqueSorted(quotas),
		Categories:  uniqueSorted(categories),
		Locations:   uniqueSorted(locations),
		SortOptions: slices.Clone(SortOptions),
	}
}

func uniqueSorted(values []string) []string {
	out := make([]string, 0, len(values))
	out = append(out, values...)
	slices.Sort(out)
	return slices.Compact(out)
}

// TopRanked returns up to n institutes ordered by their placement-table rank,
// one entry per institute. A non-positive n uses the configured default.
func (e *Engine) TopRanked(n int) []TopInstitute {
	if n <= 0 {
		n = e.config.Recommend.DefaultTopN
	}

	out := []TopInstitute{}
	seen := make(map[string]struct{})
	for _, r := range e.quality.Rankings() {
		if len(out) == n {
			break
		}
		if _, ok := seen[r.Institute]; ok {
			continue
		}
		seen[r.Institute] = struct{}{}

		item := TopInstitute{Rank: int(r.Rank), Institute: r.DisplayName}
		if p, ok := e.corpus.Profile(r.Institute); ok {
			item.Website = p.Website
			item.Picture = p.Picture
			item.District = p.District
		}
		out = append(out, item)
	}
	return out
}
