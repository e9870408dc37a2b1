package executor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/parser"
	apperrors "github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newExecutor(t *testing.T, docs map[string]string) (*Executor, *metrics.Metrics) {
	t.Helper()
	engine := indexer.NewEngine[string]()
	for id, text := range docs {
		if err := engine.AddDocument(id, text); err != nil {
			t.Fatalf("AddDocument(%s): %v", id, err)
		}
	}
	m := metrics.New(prometheus.NewRegistry())
	return New(engine, m), m
}

func TestExecute(t *testing.T) {
	exec, m := newExecutor(t, map[string]string{
		"doc1": "the cat sat on the mat",
		"doc2": "the dog sat on the log",
		"doc3": "cats and dogs",
	})
	ctx := context.Background()

	res, err := exec.Execute(ctx, parser.Parse("cat"), 10)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.TotalHits != 1 || len(res.Results) != 1 || res.Results[0].DocID != "doc1" {
		t.Fatalf("result = %+v", res)
	}
	if res.TermStats["cat"] != 1 {
		t.Errorf("term_stats = %v", res.TermStats)
	}
	if res.Generation != exec.Generation() {
		t.Errorf("generation = %d, want %d", res.Generation, exec.Generation())
	}

	res, err = exec.Execute(ctx, parser.Parse("sat"), 1)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.TotalHits != 2 || len(res.Results) != 1 {
		t.Errorf("total_hits = %d, returned = %d; want 2, 1", res.TotalHits, len(res.Results))
	}

	if _, err := exec.Execute(ctx, parser.Parse("bird"), 10); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("hit")); got != 2 {
		t.Errorf("queries{hit} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("zero_result")); got != 1 {
		t.Errorf("queries{zero_result} = %v, want 1", got)
	}
}

func TestExecuteErrors(t *testing.T) {
	exec, m := newExecutor(t, map[string]string{"doc1": "cat"})

	if _, err := exec.Execute(context.Background(), parser.Parse("cat"), 0); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
	if got := testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("queries{error} = %v, want 1", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := exec.Execute(ctx, parser.Parse("cat"), 10); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func benchmarkExecutor(b *testing.B, numDocs int) *Executor {
	b.Helper()
	engine := indexer.NewEngine[string]()
	for d := range numDocs {
		text := "search analytics platform with distributed indexing and query ranking"
		if d%3 == 0 {
			text += " distributed search"
		}
		if err := engine.AddDocument(fmt.Sprintf("doc-%d", d), text); err != nil {
			b.Fatal(err)
		}
	}
	return New(engine, metrics.New(prometheus.NewRegistry()))
}

func BenchmarkExecute(b *testing.B) {
	for _, numDocs := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("docs_%d", numDocs), func(b *testing.B) {
			exec := benchmarkExecutor(b, numDocs)
			plan := parser.Parse("distributed search")
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := exec.Execute(context.Background(), plan, 10); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkExecuteParallel(b *testing.B) {
	exec := benchmarkExecutor(b, 8000)
	plan := parser.Parse("distributed search")
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := exec.Execute(context.Background(), plan, 10); err != nil {
				b.Fatal(err)
			}
		}
	})
}
