// Package executor runs parsed queries against the engine for the HTTP
// layer, adding logging and search metrics.
package executor

import (
	"context"
	"time"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/metrics"
)

// SearchResult is the response body of GET /api/v1/search.
type SearchResult struct {
	Query      string                     `json:"query"`
	TotalHits  int                        `json:"total_hits"`
	Results    []ranker.ScoredDoc[string] `json:"results"`
	TermStats  map[string]int             `json:"term_stats"`
	Generation uint64                     `json:"generation"`
}

type Executor struct {
	engine  *indexer.Engine[string]
	metrics *metrics.Metrics
}

func New(engine *indexer.Engine[string], m *metrics.Metrics) *Executor {
	return &Executor{
		engine:  engine,
		metrics: m,
	}
}

// Execute scores plan against the current corpus and returns at most limit
// hits.
func (e *Executor) Execute(ctx context.Context, plan *parser.QueryPlan, limit int) (*SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := e.engine.Execute(plan, limit)
	if err != nil {
		e.metrics.SearchQueriesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	resultType := "hit"
	if res.TotalHits == 0 {
		resultType = "zero_result"
	}
	e.metrics.SearchQueriesTotal.WithLabelValues(resultType).Inc()
	e.metrics.SearchResultsCount.Observe(float64(len(res.Hits)))

	logger.FromContext(ctx).With("component", "query-executor").Debug("query executed",
		"query", plan.RawQuery,
		"terms", plan.Terms,
		"candidates", res.TotalHits,
		"results", len(res.Hits),
		"generation", res.Generation,
		"duration", time.Since(start),
	)
	return &SearchResult{
		Query:      plan.RawQuery,
		TotalHits:  res.TotalHits,
		Results:    res.Hits,
		TermStats:  res.DocFreq,
		Generation: res.Generation,
	}, nil
}

// Generation reports the engine's current corpus generation.
func (e *Executor) Generation() uint64 {
	return e.engine.Generation()
}
