// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

// Package cache provides a generic LRU cache with per-entry TTL.
//
// The API uses it to memoize recommendation results: the engine is immutable
// once built, so identical requests produce identical results until the
// engine is replaced.
//
//	results := cache.New[string, *recommend.Result](1000, 10*time.Minute)
//	if res, ok := results.Get(key); ok {
//	    return res
//	}
package cache
