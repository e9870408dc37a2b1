// Package handler serves the search, corpus statistics and cache endpoints.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/parser"
	apperrors "github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/metrics"
)

type SearchExecutor interface {
	Execute(ctx context.Context, plan *parser.QueryPlan, limit int) (*executor.SearchResult, error)
	Generation() uint64
}

type Handler struct {
	executor     SearchExecutor
	engine       *indexer.Engine[string]
	cache        *cache.QueryCache
	metrics      *metrics.Metrics
	defaultLimit int
	maxResults   int
	logger       *slog.Logger
}

// New builds the handler. queryCache may be nil to disable caching.
func New(exec SearchExecutor, engine *indexer.Engine[string], queryCache *cache.QueryCache, m *metrics.Metrics, defaultLimit, maxResults int) *Handler {
	return &Handler{
		executor:     exec,
		engine:       engine,
		cache:        queryCache,
		metrics:      m,
		defaultLimit: defaultLimit,
		maxResults:   maxResults,
		logger:       slog.Default().With("component", "search-handler"),
	}
}

// Register mounts the search routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("GET /api/v1/stats", h.Stats)
	mux.HandleFunc("GET /api/v1/terms/{term}", h.Term)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
}

// Search answers GET /api/v1/search?q=&limit=. A query with no terms is a
// valid request with no results.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query := r.URL.Query().Get("q")
	limit := min(h.defaultLimit, h.maxResults)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(parsed, h.maxResults)
	}

	plan := parser.Parse(query)
	var (
		result   *executor.SearchResult
		err      error
		cacheHit bool
	)
	if h.cache != nil && !plan.Empty() {
		result, cacheHit, err = h.cache.GetOrCompute(ctx, plan, limit, h.executor.Generation(), func(ctx context.Context) (*executor.SearchResult, error) {
			return h.executor.Execute(ctx, plan, limit)
		})
		if err == nil {
			if cacheHit {
				h.metrics.CacheHitsTotal.Inc()
			} else {
				h.metrics.CacheMissesTotal.Inc()
			}
			// Entries are shared by every query with the same terms.
			copied := *result
			copied.Query = query
			result = &copied
		}
	} else {
		result, err = h.executor.Execute(ctx, plan, limit)
	}
	if err != nil {
		status := apperrors.HTTPStatusCode(err)
		log.Error("search execution failed", "query", query, "error", err, "status_code", status)
		h.writeError(w, status, "search failed")
		return
	}

	cacheStatus := "miss"
	switch {
	case h.cache == nil:
		cacheStatus = "disabled"
	case cacheHit:
		cacheStatus = "hit"
	}
	elapsed := time.Since(start)
	h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(elapsed.Seconds())
	log.Info("search completed",
		"query", query,
		"total_hits", result.TotalHits,
		"returned", len(result.Results),
		"cache", cacheStatus,
		"latency_ms", elapsed.Milliseconds(),
	)
	h.writeJSON(w, http.StatusOK, result)
}

// Stats answers GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"document_count": h.engine.DocumentCount(),
		"term_count":     h.engine.TermCount(),
		"generation":     h.engine.Generation(),
		"index_bytes":    h.engine.Size(),
	})
}

// Term answers GET /api/v1/terms/{term} with the term's document frequency
// and idf. The path value is normalised like document text.
func (h *Handler) Term(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("term")
	term, ok := tokenizer.Normalize(raw)
	if !ok {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("%q is not a single term", raw))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"term":               term,
		"document_frequency": h.engine.DocumentFrequency(term),
		"idf":                h.engine.IDF(term),
	})
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}

	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}
	deleted, err := h.cache.Invalidate(r.Context())
	if err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"status": "invalidated", "keys_deleted": deleted})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
