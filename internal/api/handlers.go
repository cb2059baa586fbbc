// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/collegerank/internal/cache"
	"github.com/tomtom215/collegerank/internal/logging"
	"github.com/tomtom215/collegerank/internal/metrics"
	"github.com/tomtom215/collegerank/internal/recommend"
)

// maxBodyBytes bounds recommendation request bodies.
const maxBodyBytes = 64 << 10

// maxTopN bounds the n parameter of the top list.
const maxTopN = 100

// Recommender is the engine surface the handlers call. *recommend.Engine
// implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Result, error)
	Metadata() recommend.Metadata
	TopRanked(n int) []recommend.TopInstitute
}

// engineRef boxes a Recommender for atomic.Pointer together with the
// results it has produced. Replacing the engine drops its results.
type engineRef struct {
	Recommender
	results *cache.LRU[string, *recommend.Result]
}

// Handler serves the HTTP API. Until an engine is installed, engine routes
// answer 503 while health and metrics keep working.
type Handler struct {
	engine         atomic.Pointer[engineRef]
	requestTimeout time.Duration
	startTime      time.Time
	logger         zerolog.Logger

	cacheMu   sync.Mutex
	cacheSize int
	cacheTTL  time.Duration
}

// NewHandler creates a Handler. engine may be nil and installed later with
// SetEngine.
func NewHandler(engine Recommender, requestTimeout time.Duration, logger zerolog.Logger) *Handler { //nolint:gocritic // zerolog.Logger is designed to be passed by value
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	h := &Handler{
		requestTimeout: requestTimeout,
		startTime:      time.Now(),
		logger:         logger.With().Str("component", "api").Logger(),
	}
	h.SetEngine(engine)
	return h
}

// SetEngine installs the engine served by the handlers. Safe for
// concurrent use with in-flight requests.
func (h *Handler) SetEngine(engine Recommender) {
	h.cacheMu.Lock()
	defer h.cacheMu.Unlock()
	h.install(engine)
}

// EnableResultCache memoizes up to size recommendation results for ttl per
// engine. A size of zero or less disables the cache.
func (h *Handler) EnableResultCache(size int, ttl time.Duration) {
	h.cacheMu.Lock()
	defer h.cacheMu.Unlock()
	h.cacheSize = size
	h.cacheTTL = ttl
	h.install(h.currentEngine())
}

// install requires h.cacheMu.
func (h *Handler) install(engine Recommender) {
	if engine == nil {
		h.engine.Store(nil)
		return
	}
	ref := &engineRef{Recommender: engine}
	if h.cacheSize > 0 {
		ref.results = cache.New[string, *recommend.Result](h.cacheSize, h.cacheTTL)
	}
	h.engine.Store(ref)
}

// currentEngine returns the installed engine or nil.
func (h *Handler) currentEngine() Recommender {
	if ref := h.engine.Load(); ref != nil {
		return ref.Recommender
	}
	return nil
}

func (h *Handler) requestLogger(r *http.Request) *zerolog.Logger {
	logger := h.logger.With().Str("request_id", logging.RequestIDFromContext(r.Context())).Logger()
	return &logger
}

// HealthLive answers liveness probes.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady answers 200 once the engine is loaded and 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	if h.currentEngine() == nil {
		respondError(w, http.StatusServiceUnavailable, msgUnavailable)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Recommend runs one recommendation. Engine outcomes, including warning
// and error statuses, are answered 200 with the result body; only malformed
// requests get a 4xx.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	ref := h.engine.Load()
	if ref == nil {
		respondError(w, http.StatusServiceUnavailable, msgUnavailable)
		return
	}

	payload, err := decodeRecommendPayload(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err == nil {
		err = validatePayload(payload)
	}
	switch {
	case err == nil:
	case errors.Is(err, ErrMissingRequired):
		respondError(w, http.StatusBadRequest, msgMissingRequired)
		return
	case errors.Is(err, ErrInvalidBody):
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	default:
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var key string
	if ref.results != nil {
		if raw, err := json.Marshal(payload); err == nil {
			key = string(raw)
		}
		if key != "" {
			if res, ok := ref.results.Get(key); ok {
				metrics.RecordResultCache(true)
				w.Header().Set("X-Cache", "HIT")
				respondJSON(w, http.StatusOK, res)
				return
			}
			metrics.RecordResultCache(false)
			w.Header().Set("X-Cache", "MISS")
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	res, err := ref.Recommend(ctx, payload.Request())
	if err != nil {
		h.requestLogger(r).Warn().Err(err).Msg("Recommendation aborted")
		respondError(w, http.StatusServiceUnavailable, msgTimeout)
		return
	}

	// Trimmed again in case the engine's cap exceeds the caller's top_n.
	if len(res.Data) > payload.TopN {
		res.Data = res.Data[:payload.TopN]
	}
	if res.Data == nil {
		res.Data = []recommend.Record{}
	}
	if key != "" {
		ref.results.Add(key, res)
	}

	h.requestLogger(r).Debug().
		Str("status", res.Status).
		Str("program", payload.Program).
		Int("records", len(res.Data)).
		Str("cascade_level", res.Trace.Level).
		Str("model", res.Trace.Model).
		Msg("Recommendation served")

	respondJSON(w, http.StatusOK, res)
}

// Metadata lists the filter values present in the corpus.
func (h *Handler) Metadata(w http.ResponseWriter, r *http.Request) {
	engine := h.currentEngine()
	if engine == nil {
		respondError(w, http.StatusServiceUnavailable, msgUnavailable)
		return
	}
	respondCachedJSON(w, r, engine.Metadata())
}

// Top lists the best-ranked institutes. The optional n query parameter
// defaults to the engine's configured top-N.
func (h *Handler) Top(w http.ResponseWriter, r *http.Request) {
	engine := h.currentEngine()
	if engine == nil {
		respondError(w, http.StatusServiceUnavailable, msgUnavailable)
		return
	}

	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxTopN {
			respondError(w, http.StatusBadRequest, "n must be a whole number between 1 and "+strconv.Itoa(maxTopN))
			return
		}
		n = parsed
	}
	respondCachedJSON(w, r, engine.TopRanked(n))
}
