// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

// Package recommend ranks institutes a candidate is likely to be admitted to.
//
// # Architecture
//
// An Engine is built once from a directory of CSV snapshots and is read-only
// afterwards. Construction runs the data preparation steps:
//
//   - dataset: load and normalize the yearly rank tables and institute profiles
//   - quality: aggregate placement outcomes and review scores
//   - rules: load or mine association rules over program, stream, quota,
//     category and district
//   - selector: precompute the historical groups used for model selection
//
// Each Recommend call then walks a fixed pipeline:
//
//	filter cascade -> rank forecast -> rank threshold -> quality merge
//	  -> optional quality filter -> rule boost -> model ranking -> top N
//
// # Results
//
// Recommend reports every domain failure through Result.Status ("error" or
// "warning") and Result.Err, which wraps one of ErrInvalidRank, ErrNoData,
// ErrBelowThreshold or ErrQualityFiltered. A Go error is only returned when
// the context is done.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	cfg.Data.Root = "/srv/collegerank"
//	engine, err := recommend.New(ctx, cfg, logger)
//	if err != nil {
//	    return err
//	}
//	res, err := engine.Recommend(ctx, recommend.Request{
//	    Rank:    "1000",
//	    Program: "Computer Science",
//	})
//
// # Thread Safety
//
// Engine methods are safe for concurrent use. The only shared mutable state
// on the request path is the selector's circuit breaker, which synchronizes
// itself.
package recommend
