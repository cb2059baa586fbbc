// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

// Package selector decides, per request, whether a learned classifier ranks
// candidates better than the rank heuristic.
//
// # Evaluation set
//
// Every (institute, program, stream, quota, category) group of the corpus is
// one [Sample]: its forecast closing rank and its latest observed closing
// rank. For a caller threshold, the ground truth of a sample is whether the
// latest closing rank is at least the threshold.
//
// # Scorers
//
// Two [Scorer] implementations compete:
//
//   - [Heuristic] predicts success when the forecast rank meets the threshold.
//     It is evaluated on the full sample set.
//   - [Tree] is a depth-bounded CART classifier over label-encoded group
//     attributes plus the forecast rank, trained on a seeded, stratified
//     split and evaluated on the held-out part.
//
// The tree is selected only when its held-out accuracy is strictly higher.
// Training runs behind a circuit breaker with a deadline; any failure, an open
// breaker or a disabled selector falls back to the heuristic silently.
package selector
