// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

/*
Package services provides suture.Service wrappers for the server components.

HTTPServerService binds its listener, serves until the context is canceled
and then shuts the server down within the configured timeout.

EngineService builds the recommendation engine and hands it to an
EngineInstaller (the API handler). It returns an error on failure so the
supervisor retries, and suture.ErrDoNotRestart once the engine is installed.
*/
package services
