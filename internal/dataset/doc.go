// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

// Package dataset loads the CSV snapshots the engine works from and reconciles
// them into one canonical corpus.
//
// # Inputs
//
// All files live under a single CSV directory:
//
//   - rank_20XX.csv: one admission-round snapshot per year. Column sets differ
//     between years (older snapshots have no "Seat Type" column, for example).
//   - college.csv: institute reference data (District, Location, Website,
//     logo_image_url, Picture).
//   - placement.csv and reviews.csv: consumed by the quality package, loaded
//     here so that all I/O happens in one place.
//
// Missing files are skipped with a warning. A malformed file is an error.
//
// # Normalization
//
// [Normalize] turns the raw rank tables into [RankRecord] values:
//
//  1. The year is taken from the file name (rank_2024.csv -> 2024).
//  2. A missing Seat Type column defaults to "N/A".
//  3. Engineering degree spellings in Stream collapse to "b.e/b. tech".
//  4. Opening and closing ranks are parsed leniently; bad values become null.
//  5. Text keys are NFKC-normalized, trimmed and lowercased.
//  6. District is left-joined from college.csv by normalized institute name.
//
// Rows are never dropped during normalization.
package dataset
