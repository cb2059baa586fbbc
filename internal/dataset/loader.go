// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Sources names the files the engine reads from a CSV directory.
type Sources struct {
	// Dir is the directory containing the CSV files.
	Dir string

	// RankPattern is a filepath.Match pattern selecting yearly snapshots.
	RankPattern string

	College   string
	Placement string
	Reviews   string
}

// DefaultSources returns the standard file layout under dir.
func DefaultSources(dir string) Sources {
	return Sources{
		Dir:         dir,
		RankPattern: "rank_20*.csv",
		College:     "college.csv",
		Placement:   "placement.csv",
		Reviews:     "reviews.csv",
	}
}

// Tables holds every raw table loaded from a Sources directory.
// Optional tables are nil when their file is absent.
type Tables struct {
	// Ranks are the yearly snapshots ordered by file name.
	Ranks []*Table

	College   *Table
	Placement *Table
	Reviews   *Table
}

// maxParallelReads bounds concurrent file reads.
const maxParallelReads = 4

// Load reads all tables named by src concurrently.
// Missing and unreadable files are skipped with a warning, so one corrupt
// snapshot leaves the rest of the corpus usable. Only cancellation fails the
// load.
//
//nolint:gocritic // logger passed by value for zerolog chaining
func Load(ctx context.Context, src Sources, logger zerolog.Logger) (*Tables, error) {
	logger = logger.With().Str("component", "dataset").Str("dir", src.Dir).Logger()

	rankFiles, err := filepath.Glob(filepath.Join(src.Dir, src.RankPattern))
	if err != nil {
		return nil, fmt.Errorf("bad rank pattern %q: %w", src.RankPattern, err)
	}
	sort.Strings(rankFiles)
	if len(rankFiles) == 0 {
		logger.Warn().Str("pattern", src.RankPattern).Msg("no rank snapshots found")
	}

	tables := &Tables{Ranks: make([]*Table, len(rankFiles))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)

	for i, path := range rankFiles {
		g.Go(func() error {
			t, err := readOptional(gctx, path, logger)
			if err != nil {
				return err
			}
			tables.Ranks[i] = t
			return nil
		})
	}

	optional := []struct {
		file string
		dst  **Table
	}{
		{src.College, &tables.College},
		{src.Placement, &tables.Placement},
		{src.Reviews, &tables.Reviews},
	}
	for _, o := range optional {
		if o.file == "" {
			continue
		}
		g.Go(func() error {
			t, err := readOptional(gctx, filepath.Join(src.Dir, o.file), logger)
			if err != nil {
				return err
			}
			*o.dst = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Drop snapshots that vanished or failed to read.
	ranks := tables.Ranks[:0]
	for _, t := range tables.Ranks {
		if t != nil {
			ranks = append(ranks, t)
		}
	}
	tables.Ranks = ranks

	logger.Debug().
		Int("rank_snapshots", len(tables.Ranks)).
		Bool("college", tables.College != nil).
		Bool("placement", tables.Placement != nil).
		Bool("reviews", tables.Reviews != nil).
		Msg("tables loaded")

	return tables, nil
}

// readOptional reads one CSV file. A missing or unreadable file returns
// (nil, nil).
//
//nolint:gocritic // logger passed by value for zerolog chaining
func readOptional(ctx context.Context, path string, logger zerolog.Logger) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t, err := ReadCSV(path, name)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Str("file", filepath.Base(path)).Msg("file not found, skipped")
		return nil, nil
	}
	if err != nil {
		logger.Warn().Err(err).Str("file", filepath.Base(path)).Msg("error loading file, skipped")
		return nil, nil
	}

	logger.Debug().Str("file", filepath.Base(path)).Int("rows", t.Len()).Msg("loaded csv")
	return t, nil
}
