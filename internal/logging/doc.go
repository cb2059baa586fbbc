// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

// Package logging provides the process-wide zerolog logger for Collegerank.
//
// JSON output is the default; the console format is meant for people
// running the CLI. Components derive child loggers with a component field
// and pass them by value.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//
//	logger := logging.WithComponent("api")
//	logger.Info().Str("addr", addr).Msg("listening")
//
// # Request IDs
//
// The HTTP layer stores a UUID request ID in the request context.
// Ctx(ctx) returns a logger carrying it:
//
//	ctx = logging.ContextWithRequestID(ctx, logging.GenerateRequestID())
//	logging.Ctx(ctx).Debug().Msg("recommend request decoded")
//
// # slog
//
// SlogHandler adapts zerolog to log/slog for libraries that accept an
// *slog.Logger. The supervisor uses it with sutureslog.
package logging
