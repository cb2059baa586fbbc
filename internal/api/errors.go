// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package api

import "errors"

var (
	// ErrInvalidBody is returned when the request body is not a JSON object.
	ErrInvalidBody = errors.New("invalid JSON body")

	// ErrMissingRequired is returned when rank or program is missing.
	ErrMissingRequired = errors.New("missing required fields")

	// ErrInvalidField is returned when an optional field is out of range.
	ErrInvalidField = errors.New("invalid field")
)

// fieldError describes an out-of-range field in client terms.
type fieldError struct {
	msg string
}

func (e *fieldError) Error() string { return e.msg }

func (e *fieldError) Is(target error) bool { return target == ErrInvalidField }

// Client-facing messages.
const (
	msgUnavailable     = "Recommender not available."
	msgMissingRequired = "Required fields: rank and program."
	msgInvalidBody     = "Request body must be a JSON object."
	msgTimeout         = "Recommendation timed out."
)
