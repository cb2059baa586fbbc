// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

/*
Package api exposes the recommendation engine over HTTP using chi.

The handlers are a thin layer: they decode and validate the request,
call the engine and encode its result. Engine outcomes with a warning or
error status are still answered 200 with the result body, matching the
form-based frontend. Only malformed requests get 400, and every engine
route answers 503 while the engine is unavailable.

# Endpoints

	GET  /api/v1/health/live   liveness probe
	GET  /api/v1/health/ready  503 until the engine is loaded
	POST /api/v1/recommend     recommendation query
	GET  /api/v1/metadata      filter values found in the corpus
	GET  /api/v1/top?n=10      best-ranked institutes
	GET  /metrics              Prometheus metrics

With RouterConfig.LegacyRoutes, POST /recommend_colleges, GET /metadata and
GET /top/data serve the same handlers.

# Request body

	{
	  "rank": "1500",
	  "program": "Computer Science and Engineering",
	  "stream": "Engineering",
	  "quota": "AI",
	  "category": "OPEN",
	  "location": "Delhi",
	  "min_ctc": 6,
	  "min_placements_score": 3.5,
	  "target_year": 2026,
	  "top_n": 10
	}

rank and program are required. Every text field also accepts a user_
prefixed alias (user_rank, user_program, ...). Numbers may be sent as JSON
numbers or strings. Unparseable quality thresholds are treated as 0.
*/
package api
