// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package config

import (
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 65536 }, wantErr: true},
		{name: "zero read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = 0 }, wantErr: true},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.Server.ShutdownTimeout = 0 }, wantErr: true},
		{name: "zero request timeout", mutate: func(c *Config) { c.Server.RequestTimeout = 0 }, wantErr: true},
		{name: "negative rate limit", mutate: func(c *Config) { c.Server.RateLimitRequests = -1 }, wantErr: true},
		{name: "rate limit without window", mutate: func(c *Config) { c.Server.RateLimitWindow = 0 }, wantErr: true},
		{name: "rate limit disabled", mutate: func(c *Config) {
			c.Server.RateLimitRequests = 0
			c.Server.RateLimitWindow = 0
		}},
		{name: "negative result cache", mutate: func(c *Config) { c.Server.ResultCacheSize = -1 }, wantErr: true},
		{name: "result cache without ttl", mutate: func(c *Config) { c.Server.ResultCacheTTL = 0 }, wantErr: true},
		{name: "result cache disabled", mutate: func(c *Config) {
			c.Server.ResultCacheSize = 0
			c.Server.ResultCacheTTL = 0
		}},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
		{name: "empty log format", mutate: func(c *Config) { c.Logging.Format = "" }},
		{name: "engine section", mutate: func(c *Config) { c.Rules.MaxItemsetSize = 1 }, wantErr: true},
		{name: "selector section", mutate: func(c *Config) { c.Selector.TrainTimeout = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Engine(t *testing.T) {
	cfg := defaultConfig()
	cfg.Data.Root = "/srv"
	cfg.Rules.Regenerate = true
	cfg.Recommend.MaxResults = 5
	cfg.Selector.Enabled = false

	got := cfg.Engine()
	if got.Data.Root != "/srv" || !got.Rules.Regenerate || got.Recommend.MaxResults != 5 || got.Selector.Enabled {
		t.Errorf("Engine() = %+v, sections not carried over", got)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Engine().Validate() = %v", err)
	}
}
