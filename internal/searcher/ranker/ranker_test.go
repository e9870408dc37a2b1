package ranker

import (
	"fmt"
	"math"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer/index"
)

const epsilon = 1e-9

func TestIDF(t *testing.T) {
	tests := []struct {
		name     string
		n, df    int
		expected float64
	}{
		{"rare term", 3, 1, math.Log(3)},
		{"common term", 4, 2, math.Log(2)},
		{"in every document", 5, 5, 0},
		{"unseen term", 5, 0, 0},
		{"empty corpus", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IDF(tt.n, tt.df); math.Abs(got-tt.expected) > epsilon {
				t.Errorf("IDF(%d, %d) = %v, want %v", tt.n, tt.df, got, tt.expected)
			}
		})
	}
}

func TestWeightRarityBoost(t *testing.T) {
	const n = 10
	for df := 1; df < n; df++ {
		rarer := Weight(3, IDF(n, df))
		common := Weight(3, IDF(n, df+1))
		if rarer < common {
			t.Errorf("df=%d weight %v < df=%d weight %v", df, rarer, df+1, common)
		}
	}
}

func TestWeightMonotonicInTF(t *testing.T) {
	idf := IDF(10, 3)
	prev := Weight(1, idf)
	for tf := 2; tf <= 20; tf++ {
		w := Weight(tf, idf)
		if w < prev {
			t.Fatalf("weight decreased from tf=%d to tf=%d", tf-1, tf)
		}
		prev = w
	}
}

func TestRankSumsAndOrders(t *testing.T) {
	postings := map[string]index.PostingList[string]{
		"love": {{DocID: "doc3", Frequency: 1}},
		"dogs": {{DocID: "doc1", Frequency: 1}, {DocID: "doc3", Frequency: 1}},
	}
	ranked := Rank(postings, 3, 0)
	if len(ranked) != 2 {
		t.Fatalf("got %d results, want 2", len(ranked))
	}
	if ranked[0].DocID != "doc3" || ranked[1].DocID != "doc1" {
		t.Fatalf("order = %v, want doc3, doc1", ranked)
	}
	wantDoc3 := math.Log(3) + math.Log(1.5)
	if math.Abs(ranked[0].Score-wantDoc3) > epsilon {
		t.Errorf("score(doc3) = %v, want %v", ranked[0].Score, wantDoc3)
	}
	if math.Abs(ranked[1].Score-math.Log(1.5)) > epsilon {
		t.Errorf("score(doc1) = %v, want %v", ranked[1].Score, math.Log(1.5))
	}
}

func TestRankTieBreakAndLimit(t *testing.T) {
	postings := map[string]index.PostingList[int]{
		"x": {{DocID: 30, Frequency: 1}, {DocID: 10, Frequency: 1}, {DocID: 20, Frequency: 1}},
	}
	ranked := Rank(postings, 6, 0)
	for i, want := range []int{10, 20, 30} {
		if ranked[i].DocID != want {
			t.Fatalf("position %d = %d, want %d (%v)", i, ranked[i].DocID, want, ranked)
		}
	}
	limited := Rank(postings, 6, 2)
	if len(limited) != 2 || limited[1].DocID != 20 {
		t.Errorf("limited = %v", limited)
	}
}

func TestRankKeepsZeroScoreMatches(t *testing.T) {
	postings := map[string]index.PostingList[string]{
		"the": {{DocID: "a", Frequency: 2}, {DocID: "b", Frequency: 1}},
	}
	ranked := Rank(postings, 2, 0)
	if len(ranked) != 2 {
		t.Fatalf("matching documents must stay candidates, got %v", ranked)
	}
	for _, r := range ranked {
		if r.Score != 0 {
			t.Errorf("score(%s) = %v, want 0 for a term in every document", r.DocID, r.Score)
		}
	}
}

func BenchmarkRank(b *testing.B) {
	for _, numDocs := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("docs_%d", numDocs), func(b *testing.B) {
			pl := make(index.PostingList[string], numDocs)
			for i := 0; i < numDocs; i++ {
				pl[i] = index.Posting[string]{
					DocID:     fmt.Sprintf("doc-%d", i),
					Frequency: (i % 10) + 1,
				}
			}
			postings := map[string]index.PostingList[string]{"search": pl}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = Rank(postings, numDocs*2, 10)
			}
		})
	}
}
