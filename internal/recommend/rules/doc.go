// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

// Package rules mines association rules from the attribute co-occurrence of
// historical admission rows and persists them as CSV.
//
// Every rank row becomes a transaction of "attribute=value" items over
// program, stream, quota, category and district. Itemsets of size 1 to 3 are
// counted exhaustively; those meeting the minimum support are frequent. Each
// frequent itemset of size two or more yields one rule per member, with that
// member as the single-item consequent.
//
// # Persistence
//
// [Store.Ensure] loads the rules file, mining and writing it only when the
// file is missing or unreadable. Writers are serialized within the process by
// a mutex and across processes by an exclusive lock file; the winner writes a
// temporary file and renames it into place.
package rules
