package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/ranker"
	"github.com/redis/go-redis/v9"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.data[key]
	if !ok {
		return nil, redis.Nil
	}
	return v, nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.data[key] = value
	return nil
}

func (s *memStore) FlushByPattern(ctx context.Context, pattern string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	var n int64
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			delete(s.data, k)
			n++
		}
	}
	return n, nil
}

func result(gen uint64, ids ...string) *executor.SearchResult {
	res := &executor.SearchResult{Generation: gen, Results: []ranker.ScoredDoc[string]{}}
	for _, id := range ids {
		res.Results = append(res.Results, ranker.ScoredDoc[string]{DocID: id, Score: 1})
	}
	res.TotalHits = len(ids)
	return res
}

func TestGetOrComputeCachesPerGeneration(t *testing.T) {
	c := New(newMemStore(), time.Minute)
	ctx := context.Background()
	plan := parser.Parse("cat dog")
	calls := 0
	compute := func(gen uint64) func(context.Context) (*executor.SearchResult, error) {
		return func(context.Context) (*executor.SearchResult, error) {
			calls++
			return result(gen, "doc1"), nil
		}
	}

	if _, hit, err := c.GetOrCompute(ctx, plan, 10, 1, compute(1)); err != nil || hit {
		t.Fatalf("first call: hit=%v err=%v", hit, err)
	}
	got, hit, err := c.GetOrCompute(ctx, parser.Parse("dog cat"), 10, 1, compute(1))
	if err != nil || !hit {
		t.Fatalf("reordered query should hit: hit=%v err=%v", hit, err)
	}
	if got.Results[0].DocID != "doc1" {
		t.Errorf("cached result = %+v", got)
	}

	if _, hit, _ := c.GetOrCompute(ctx, plan, 10, 2, compute(2)); hit {
		t.Error("a new generation must not be served from cache")
	}
	if _, hit, _ := c.GetOrCompute(ctx, plan, 5, 2, compute(2)); hit {
		t.Error("a different limit must not share an entry")
	}
	if calls != 3 {
		t.Errorf("compute calls = %d, want 3", calls)
	}
	hits, misses := c.Stats()
	if hits != 1 || misses != 3 {
		t.Errorf("stats = %d/%d, want 1/3", hits, misses)
	}
}

func TestStoredUnderComputedGeneration(t *testing.T) {
	c := New(newMemStore(), time.Minute)
	ctx := context.Background()
	plan := parser.Parse("cat")

	// The corpus moved from generation 4 to 5 while the query ran.
	c.GetOrCompute(ctx, plan, 10, 4, func(context.Context) (*executor.SearchResult, error) {
		return result(5, "doc1"), nil
	})
	if _, ok := c.Get(ctx, plan, 10, 4); ok {
		t.Error("result scored at generation 5 served for generation 4")
	}
	if _, ok := c.Get(ctx, plan, 10, 5); !ok {
		t.Error("result should be cached under generation 5")
	}
}

func TestComputeErrorNotCached(t *testing.T) {
	store := newMemStore()
	c := New(store, time.Minute)
	boom := errors.New("boom")
	_, _, err := c.GetOrCompute(context.Background(), parser.Parse("cat"), 10, 1, func(context.Context) (*executor.SearchResult, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if len(store.data) != 0 {
		t.Errorf("store has %d entries, want 0", len(store.data))
	}
}

func TestBackendErrorIsMiss(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("connection refused")
	c := New(store, time.Minute)
	got, hit, err := c.GetOrCompute(context.Background(), parser.Parse("cat"), 10, 1, func(context.Context) (*executor.SearchResult, error) {
		return result(1, "doc1"), nil
	})
	if err != nil || hit || got == nil {
		t.Errorf("got=%v hit=%v err=%v", got, hit, err)
	}
}

func TestConcurrentMissesCollapse(t *testing.T) {
	c := New(newMemStore(), time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.GetOrCompute(context.Background(), parser.Parse("cat"), 10, 1, func(context.Context) (*executor.SearchResult, error) {
				calls.Add(1)
				<-release
				return result(1, "doc1"), nil
			})
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	if n := calls.Load(); n != 1 {
		t.Errorf("compute calls = %d, want 1", n)
	}
}

func TestInvalidate(t *testing.T) {
	store := newMemStore()
	c := New(store, time.Minute)
	c.Set(context.Background(), parser.Parse("cat"), 10, result(1, "doc1"))
	store.data["other:key"] = []byte("x")

	deleted, err := c.Invalidate(context.Background())
	if err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if deleted != 1 || len(store.data) != 1 {
		t.Errorf("deleted = %d, remaining = %d", deleted, len(store.data))
	}
}

func TestComputeSurvivesFirstCallerCancel(t *testing.T) {
	c := New(newMemStore(), time.Minute)
	plan := parser.Parse("cat")
	started := make(chan struct{})
	release := make(chan struct{})
	compute := func(ctx context.Context) (*executor.SearchResult, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return result(1, "doc1"), nil
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, _, err := c.GetOrCompute(firstCtx, plan, 10, 1, compute)
		firstErr <- err
	}()
	<-started

	type outcome struct {
		res *executor.SearchResult
		err error
	}
	second := make(chan outcome, 1)
	go func() {
		res, _, err := c.GetOrCompute(context.Background(), plan, 10, 1, func(context.Context) (*executor.SearchResult, error) {
			return nil, errors.New("second compute must not run")
		})
		second <- outcome{res, err}
	}()
	time.Sleep(50 * time.Millisecond)
	cancelFirst()
	close(release)

	if err := <-firstErr; err != nil {
		t.Errorf("first caller err = %v, want nil", err)
	}
	got := <-second
	if got.err != nil || got.res == nil || got.res.Results[0].DocID != "doc1" {
		t.Errorf("waiting caller got %+v, %v", got.res, got.err)
	}
	if _, ok := c.Get(context.Background(), plan, 10, 1); !ok {
		t.Error("result computed for a cancelled caller was not cached")
	}
}
