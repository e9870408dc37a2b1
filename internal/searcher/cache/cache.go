// Package cache keeps search results in Redis. Keys include the corpus
// generation, so a result is only ever served for the corpus state it was
// scored against.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/parser"
	pkgredis "github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/resilience"
	"golang.org/x/sync/singleflight"
)

const (
	keyPrefix = "search:"
	opTimeout = 250 * time.Millisecond
)

// Store is the key-value backend; *redis.Client implements it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	FlushByPattern(ctx context.Context, pattern string) (int64, error)
}

// QueryCache is safe for concurrent use. Backend calls are bounded by a
// short timeout and skipped entirely while the breaker is open, so a slow or
// unreachable Redis degrades to uncached search.
type QueryCache struct {
	store   Store
	ttl     time.Duration
	group   singleflight.Group
	breaker *resilience.Breaker
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

func New(store Store, ttl time.Duration) *QueryCache {
	return &QueryCache{
		store: store,
		ttl:   ttl,
		breaker: resilience.NewBreaker("query-cache", resilience.BreakerConfig{
			FailureThreshold: 5,
			Cooldown:         10 * time.Second,
			IsFailure: func(err error) bool {
				return err != nil && !pkgredis.IsNilError(err)
			},
		}),
		logger: slog.Default().With("component", "query-cache"),
	}
}

func (c *QueryCache) get(ctx context.Context, key string) ([]byte, error) {
	// Buffered so a call abandoned by the timeout never blocks or races.
	found := make(chan []byte, 1)
	err := c.breaker.Do(func() error {
		return resilience.WithTimeout(ctx, opTimeout, "cache get", func(ctx context.Context) error {
			data, err := c.store.Get(ctx, key)
			if err != nil {
				return err
			}
			found <- data
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return <-found, nil
}

func (c *QueryCache) set(ctx context.Context, key string, data []byte) error {
	return c.breaker.Do(func() error {
		return resilience.WithTimeout(ctx, opTimeout, "cache set", func(ctx context.Context) error {
			return c.store.Set(ctx, key, data, c.ttl)
		})
	})
}

func (c *QueryCache) logBackendError(msg, key string, err error) {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.Debug(msg, "key", key, "error", err)
		return
	}
	c.logger.Error(msg, "key", key, "error", err)
}

// Get looks up the result for plan and limit at corpus generation gen.
// Backend errors count as misses.
func (c *QueryCache) Get(ctx context.Context, plan *parser.QueryPlan, limit int, gen uint64) (*executor.SearchResult, bool) {
	key := buildKey(plan, limit, gen)
	data, err := c.get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logBackendError("cache get failed", key, err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var result executor.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "query", plan.RawQuery, "key", key)
	return &result, true
}

// Set stores result under the generation it was computed at.
func (c *QueryCache) Set(ctx context.Context, plan *parser.QueryPlan, limit int, result *executor.SearchResult) {
	key := buildKey(plan, limit, result.Generation)
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.set(ctx, key, data); err != nil {
		c.logBackendError("cache set failed", key, err)
	}
}

// GetOrCompute returns the cached result for the current generation or runs
// computeFn once for all concurrent callers with the same key. computeFn
// gets a context that keeps ctx's values but is not cancelled with it, since
// its result is shared by callers that may still be waiting.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	plan *parser.QueryPlan,
	limit int,
	gen uint64,
	computeFn func(ctx context.Context) (*executor.SearchResult, error),
) (*executor.SearchResult, bool, error) {
	if result, ok := c.Get(ctx, plan, limit, gen); ok {
		return result, true, nil
	}
	key := buildKey(plan, limit, gen)
	val, err, _ := c.group.Do(key, func() (any, error) {
		shared := context.WithoutCancel(ctx)
		result, err := computeFn(shared)
		if err != nil {
			return nil, err
		}
		c.Set(shared, plan, limit, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(*executor.SearchResult), false, nil
}

// Invalidate deletes every cached result.
func (c *QueryCache) Invalidate(ctx context.Context) (int64, error) {
	deleted, err := c.store.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return deleted, fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return deleted, nil
}

func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// buildKey hashes the sorted distinct query terms, the limit and the
// generation. Term order does not change scores, so "cat dog" and
// "dog cat" share an entry.
func buildKey(plan *parser.QueryPlan, limit int, gen uint64) string {
	terms := slices.Clone(plan.Terms)
	slices.Sort(terms)
	raw := fmt.Sprintf("%s|limit=%d|gen=%d", strings.Join(terms, ","), limit, gen)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
