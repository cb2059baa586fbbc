// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package config

import (
	"time"

	"github.com/tomtom215/collegerank/internal/recommend"
	"github.com/tomtom215/collegerank/internal/recommend/selector"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: recommend.DefaultConfig plus server and logging defaults
//  2. Config File: optional YAML file (config.yaml, or CONFIG_PATH)
//  3. Environment Variables: override any mapped setting
//
// The data, rules, recommend and selector sections are passed to the
// recommendation engine through Engine.
type Config struct {
	Data      recommend.DataConfig   `koanf:"data"`
	Rules     recommend.RulesConfig  `koanf:"rules"`
	Recommend recommend.LimitsConfig `koanf:"recommend"`
	Selector  selector.Config        `koanf:"selector"`

	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RequestTimeout bounds one recommendation request.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// CORSOrigins lists the origins allowed by the CORS middleware.
	// "*" allows any origin.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitRequests is the number of requests allowed per client IP
	// within RateLimitWindow. Zero disables rate limiting.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	// LegacyRoutes also serves /recommend_colleges, /metadata and /top/data.
	LegacyRoutes bool `koanf:"legacy_routes"`

	// ResultCacheSize is the number of recommendation results memoized per
	// loaded engine. Zero disables the cache.
	ResultCacheSize int           `koanf:"result_cache_size"`
	ResultCacheTTL  time.Duration `koanf:"result_cache_ttl"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Engine returns the recommendation engine configuration.
func (c *Config) Engine() *recommend.Config {
	return &recommend.Config{
		Data:      c.Data,
		Rules:     c.Rules,
		Recommend: c.Recommend,
		Selector:  c.Selector,
	}
}
