// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

/*
Package config provides centralized configuration management for Collegerank.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The file is read from CONFIG_PATH when
set, otherwise from the first of DefaultConfigPaths that exists.

# Configuration Structure

  - data: location of the CSV snapshots (root, csv_dir, rank_pattern, file names)
  - rules: association rule mining (min_support, max_itemset_size, file, regenerate)
  - recommend: request defaults (default_target_year, default_top_n, max_results)
  - selector: heuristic versus decision tree selection and its training breaker
  - server: HTTP listener, timeouts, CORS and rate limiting
  - logging: zerolog level, format and caller annotation

# Environment Variables

Data and engine:
  - DATA_ROOT: data root directory (default: .)
  - DATA_CSV_DIR: CSV subdirectory (default: csv)
  - DATA_RANK_PATTERN: rank snapshot glob (default: rank_20*.csv)
  - RULES_MIN_SUPPORT: minimum itemset support (default: 0.02)
  - RULES_MAX_ITEMSET_SIZE: largest itemset mined (default: 3)
  - RULES_FILE: rules file name (default: associates_rules.csv)
  - RULES_REGENERATE: mine rules at startup even if the file exists
  - RECOMMEND_TARGET_YEAR: default forecast year (default: 2026)
  - RECOMMEND_TOP_N, RECOMMEND_MAX_RESULTS: result limits (default: 10)
  - SELECTOR_ENABLED, SELECTOR_MAX_DEPTH, SELECTOR_TEST_SIZE, SELECTOR_SEED,
    SELECTOR_TRAIN_TIMEOUT: decision tree training

HTTP Server:
  - HTTP_HOST: bind address (default: 0.0.0.0)
  - HTTP_PORT: listen port (default: 8000)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - HTTP_REQUEST_TIMEOUT: per-recommendation deadline (default: 10s)
  - HTTP_LEGACY_ROUTES: also serve /recommend_colleges, /metadata, /top/data
  - CORS_ORIGINS: comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW: per-IP limit (default: 100/1m)
  - RESULT_CACHE_SIZE, RESULT_CACHE_TTL: memoized results per engine (default: 1000/10m, size 0 disables)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include caller file:line (default: false)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("invalid configuration")
	}
	engine, err := recommend.New(ctx, cfg.Engine(), logging.Logger())
*/
package config
