// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

// Package predict narrows the rank corpus to a caller's filters and forecasts
// next-cycle closing ranks per (institute, program, stream, quota, category).
//
// # Cascade
//
// Filters are applied leniently: a value first matches exactly, then as a
// substring. When the full filter set yields nothing, constraints are relaxed
// in a fixed order (see [Level]). The first non-empty level wins.
//
// # Forecast
//
// Survivors are deduplicated to the latest round per (year, institute, stream,
// quota, category). If the target year is present, its observed closing ranks
// are returned directly. Otherwise each group's forecast is the mean of its
// one or two most recent closing ranks, floored at 1.
package predict
