// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

/*
Package supervisor runs the server process under a suture v4 supervisor tree.

	Root ("collegerank")
	├── engine-layer
	│   └── EngineService    loads corpus + rules, installs the engine
	└── api-layer
	    └── HTTPServerService

The HTTP server starts immediately. Engine routes answer 503 and
/api/v1/health/ready reports not ready until EngineService installs the
engine; a failed load is retried with the tree's backoff.

Supervisor events are logged through sutureslog, which takes a *slog.Logger.
Pass logging.NewSlogLogger() to route them into the zerolog output:

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddEngineService(services.NewEngineService(load, handler, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, timeout, logger))
	err := tree.Serve(ctx)
*/
package supervisor
