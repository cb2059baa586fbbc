// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Error messages name fields by
// their json tag, so they match the request body the client sent.
//
// Custom tags:
//   - notblank: string must contain something other than whitespace
//
// Example:
//
//	type topQuery struct {
//	    N int `json:"n" validate:"omitempty,min=1,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    // verr.Error() == "n must be at most 100"
//	}
package validation
