// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

// Package quality aggregates placement outcomes and student reviews into
// per-institute quality signals.
//
// Two independent aggregates are produced:
//
//   - placement: grouped by (institute, program). Compensation columns take
//     the maximum observed value; recruiter, job title and institute rank take
//     the first non-empty value.
//   - reviews: grouped by institute. Every score column takes the mean of its
//     non-null values, so a row missing one score still counts for the others.
//
// Non-numeric values are treated as missing. A missing aggregate never removes
// a candidate; callers substitute zero or an empty string.
package quality
