// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/collegerank/internal/api"
)

// EngineLoadFunc builds the recommendation engine.
type EngineLoadFunc func(ctx context.Context) (api.Recommender, error)

// EngineInstaller receives the engine once it is built. *api.Handler
// implements it.
type EngineInstaller interface {
	SetEngine(engine api.Recommender)
}

// EngineService loads the engine under supervision. A failed load returns
// an error so the supervisor retries it with backoff; a successful load
// installs the engine and retires the service with suture.ErrDoNotRestart.
type EngineService struct {
	load      EngineLoadFunc
	installer EngineInstaller
	logger    zerolog.Logger
	name      string
}

// NewEngineService creates an engine loading service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngineService(load EngineLoadFunc, installer EngineInstaller, logger zerolog.Logger) *EngineService {
	return &EngineService{
		load:      load,
		installer: installer,
		logger:    logger.With().Str("service", "engine-loader").Logger(),
		name:      "engine-loader",
	}
}

// Serve implements suture.Service.
func (s *EngineService) Serve(ctx context.Context) error {
	start := time.Now()
	s.logger.Info().Msg("loading recommendation engine")

	engine, err := s.load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Error().Err(err).Msg("engine load failed, will retry")
		return fmt.Errorf("load engine: %w", err)
	}
	if engine == nil {
		return errors.New("load engine: loader returned no engine")
	}

	s.installer.SetEngine(engine)
	s.logger.Info().Dur("duration", time.Since(start)).Msg("recommendation engine ready")
	return suture.ErrDoNotRestart
}

// String returns the service name for logging.
func (s *EngineService) String() string {
	return s.name
}
