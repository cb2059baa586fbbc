// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package recommend

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tomtom215/collegerank/internal/dataset"
	"github.com/tomtom215/collegerank/internal/recommend/rules"
	"github.com/tomtom215/collegerank/internal/recommend/selector"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Data locates the CSV snapshots.
	Data DataConfig `koanf:"data"`

	// Rules controls association rule mining and persistence.
	Rules RulesConfig `koanf:"rules"`

	// Recommend holds request defaults and limits.
	Recommend LimitsConfig `koanf:"recommend"`

	// Selector controls heuristic versus classifier selection.
	Selector selector.Config `koanf:"selector"`
}

// DataConfig locates the input tables.
type DataConfig struct {
	// Root is the data root directory. CSV files live in Root/CSVDir.
	Root string `koanf:"root"`

	// CSVDir is the CSV subdirectory, relative to Root.
	CSVDir string `koanf:"csv_dir"`

	// RankPattern is the glob matching the yearly rank snapshots.
	RankPattern string `koanf:"rank_pattern"`

	College   string `koanf:"college"`
	Placement string `koanf:"placement"`
	Reviews   string `koanf:"reviews"`
}

// Dir returns the directory holding the CSV files.
func (d DataConfig) Dir() string {
	return filepath.Join(d.Root, d.CSVDir)
}

// Sources converts the configuration into dataset sources.
func (d DataConfig) Sources() dataset.Sources {
	return dataset.Sources{
		Dir:         d.Dir(),
		RankPattern: d.RankPattern,
		College:     d.College,
		Placement:   d.Placement,
		Reviews:     d.Reviews,
	}
}

// RulesConfig controls association rule mining and persistence.
type RulesConfig struct {
	MinSupport     float64 `koanf:"min_support"`
	MaxItemsetSize int     `koanf:"max_itemset_size"`

	// File is the rules file name inside the CSV directory.
	File string `koanf:"file"`

	// Regenerate mines and rewrites the rules file at startup even when a
	// readable one exists.
	Regenerate bool `koanf:"regenerate"`
}

// Mining returns the miner configuration.
func (r RulesConfig) Mining() rules.Config {
	return rules.Config{MinSupport: r.MinSupport, MaxItemsetSize: r.MaxItemsetSize}
}

// LimitsConfig holds request defaults.
type LimitsConfig struct {
	// DefaultTargetYear is used when a request leaves TargetYear unset.
	DefaultTargetYear int `koanf:"default_target_year"`

	// DefaultTopN is used when a request leaves TopN unset.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxResults caps the number of records in a result.
	MaxResults int `koanf:"max_results"`
}

// DefaultConfig returns a configuration with production defaults.
func DefaultConfig() *Config {
	src := dataset.DefaultSources("")
	return &Config{
		Data: DataConfig{
			Root:        ".",
			CSVDir:      "csv",
			RankPattern: src.RankPattern,
			College:     src.College,
			Placement:   src.Placement,
			Reviews:     src.Reviews,
		},
		Rules: RulesConfig{
			MinSupport:     rules.DefaultConfig().MinSupport,
			MaxItemsetSize: rules.DefaultConfig().MaxItemsetSize,
			File:           rules.DefaultFileName,
		},
		Recommend: LimitsConfig{
			DefaultTargetYear: 2026,
			DefaultTopN:       10,
			MaxResults:        10,
		},
		Selector: selector.DefaultConfig(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Data.RankPattern == "" {
		return errors.New("data.rank_pattern must not be empty")
	}
	if _, err := filepath.Match(c.Data.RankPattern, ""); err != nil {
		return fmt.Errorf("data.rank_pattern is not a valid glob: %w", err)
	}
	if c.Rules.File == "" {
		return errors.New("rules.file must not be empty")
	}
	if err := c.Rules.Mining().Validate(); err != nil {
		return err
	}
	if c.Recommend.DefaultTopN < 1 {
		return fmt.Errorf("recommend.default_top_n must be positive, got %d", c.Recommend.DefaultTopN)
	}
	if c.Recommend.MaxResults < 1 {
		return fmt.Errorf("recommend.max_results must be positive, got %d", c.Recommend.MaxResults)
	}
	if err := c.Selector.Validate(); err != nil {
		return err
	}
	return nil
}
