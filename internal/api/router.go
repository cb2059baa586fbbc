// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/collegerank/internal/middleware"
)

// DefaultRequestTimeout bounds one recommendation.
const DefaultRequestTimeout = 10 * time.Second

// RouterConfig configures the router's middleware.
type RouterConfig struct {
	// CORSOrigins lists allowed origins. "*" allows any origin.
	CORSOrigins []string

	// RateLimitRequests per RateLimitWindow per client IP. Zero disables
	// rate limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// LegacyRoutes also mounts /recommend_colleges, /metadata and /top/data
	// for clients of the form-based frontend.
	LegacyRoutes bool
}

// NewRouter builds the chi router serving h.
//
// Routes:
//
//	GET  /api/v1/health/live
//	GET  /api/v1/health/ready
//	POST /api/v1/recommend
//	GET  /api/v1/metadata
//	GET  /api/v1/top?n=10
//	GET  /metrics
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(corsHandler(cfg.CORSOrigins))

	r.Handle("/metrics", promhttp.Handler())

	limit := rateLimit(cfg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)

		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.Use(chimiddleware.Compress(5, "application/json"))

			r.Post("/recommend", h.Recommend)
			r.Get("/metadata", h.Metadata)
			r.Get("/top", h.Top)
		})
	})

	if cfg.LegacyRoutes {
		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.Post("/recommend_colleges", h.Recommend)
			r.Get("/metadata", h.Metadata)
			r.Get("/top/data", h.Top)
		})
	}

	return r
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, o := range origins {
		if o == "*" {
			// Browsers reject credentials with a wildcard origin.
			allowCredentials = false
		}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "ETag"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	})
}

// rateLimit limits requests per client IP, or passes through when disabled.
func rateLimit(cfg RouterConfig) func(http.Handler) http.Handler {
	if cfg.RateLimitRequests <= 0 || cfg.RateLimitWindow <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			respondError(w, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.")
		}),
	)
}
