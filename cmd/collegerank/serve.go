// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/collegerank/internal/api"
	"github.com/tomtom215/collegerank/internal/config"
	"github.com/tomtom215/collegerank/internal/logging"
	"github.com/tomtom215/collegerank/internal/metrics"
	"github.com/tomtom215/collegerank/internal/recommend"
	"github.com/tomtom215/collegerank/internal/supervisor"
	"github.com/tomtom215/collegerank/internal/supervisor/services"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API under a supervisor tree. The server starts immediately;
recommendation routes answer 503 until the corpus and rules are loaded.
SIGINT or SIGTERM triggers a graceful shutdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, opts.cfg)
		},
	}
}

// runServer blocks until ctx is canceled.
func runServer(ctx context.Context, cfg *config.Config) error {
	logger := logging.WithComponent("server")

	metrics.SetAppInfo(version)

	handler := api.NewHandler(nil, cfg.Server.RequestTimeout, logging.Logger())
	handler.EnableResultCache(cfg.Server.ResultCacheSize, cfg.Server.ResultCacheTTL)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:       cfg.Server.CORSOrigins,
		RateLimitRequests: cfg.Server.RateLimitRequests,
		RateLimitWindow:   cfg.Server.RateLimitWindow,
		LegacyRoutes:      cfg.Server.LegacyRoutes,
	})

	server := &http.Server{
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       2 * cfg.Server.WriteTimeout,
	}
	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))

	engineCfg := cfg.Engine()
	load := func(ctx context.Context) (api.Recommender, error) {
		engine, err := recommend.New(ctx, engineCfg, logging.WithComponent("engine"))
		if err != nil {
			return nil, err
		}
		return engine, nil
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddEngineService(services.NewEngineService(load, handler, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout, logging.Logger()))

	logger.Info().
		Str("addr", addr).
		Str("version", version).
		Str("data_dir", engineCfg.Data.Dir()).
		Bool("legacy_routes", cfg.Server.LegacyRoutes).
		Msg("Starting collegerank server")

	err := tree.Serve(ctx)
	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		logger.Warn().Int("count", len(report)).Msg("Services did not stop within the shutdown timeout")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("Server stopped")
	return nil
}
