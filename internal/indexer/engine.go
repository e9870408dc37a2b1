// Package indexer holds the search Engine: an explicit, caller-owned
// instance that indexes documents and answers TF-IDF ranked queries over
// them. Its lifecycle is NewEngine, then any number of AddDocument and
// Search calls from any goroutine.
package indexer

import (
	"cmp"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/ranker"
	apperrors "github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/errors"
)

// Engine is safe for concurrent use. ID is fixed per instance, typically
// string or int.
type Engine[ID cmp.Ordered] struct {
	memIndex *index.MemoryIndex[ID]
}

// Result is a ranked page of hits plus the size of the full candidate set.
type Result[ID cmp.Ordered] struct {
	Hits      []ranker.ScoredDoc[ID]
	TotalHits int
	// DocFreq holds the document frequency of every query term that matched.
	DocFreq map[string]int
	// Generation is the corpus generation the hits were scored against.
	Generation uint64
}

func NewEngine[ID cmp.Ordered]() *Engine[ID] {
	return &Engine[ID]{
		memIndex: index.NewMemoryIndex[ID](),
	}
}

// AddDocument indexes text under id. It returns ErrDuplicateDocument when
// id is already indexed and ErrInvalidArgument for an empty string id; in
// both cases nothing changes.
func (e *Engine[ID]) AddDocument(id ID, text string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return e.memIndex.AddDocument(id, text)
}

// ReplaceDocument atomically removes the document under id, if any, and
// indexes text in its place.
func (e *Engine[ID]) ReplaceDocument(id ID, text string) (replaced bool, err error) {
	if err := validateID(id); err != nil {
		return false, err
	}
	return e.memIndex.ReplaceDocument(id, text), nil
}

// RemoveDocument returns ErrDocumentNotFound for an unknown id.
func (e *Engine[ID]) RemoveDocument(id ID) error {
	return e.memIndex.RemoveDocument(id)
}

func validateID[ID cmp.Ordered](id ID) error {
	if s, ok := any(id).(string); ok && strings.TrimSpace(s) == "" {
		return apperrors.InvalidArgument("document id must not be empty")
	}
	return nil
}

// DocumentCount returns N, the number of indexed documents.
func (e *Engine[ID]) DocumentCount() int {
	return e.memIndex.DocCount()
}

// DocumentFrequency returns the number of documents containing term, after
// normalising it like document text. Input that does not normalise to
// exactly one term has frequency 0.
func (e *Engine[ID]) DocumentFrequency(term string) int {
	t, ok := tokenizer.Normalize(term)
	if !ok {
		return 0
	}
	return e.memIndex.DocFreq(t)
}

// TermFrequency returns the raw count of term in document id.
func (e *Engine[ID]) TermFrequency(term string, id ID) int {
	t, ok := tokenizer.Normalize(term)
	if !ok {
		return 0
	}
	tf, _, _ := e.memIndex.TermStats(t, id)
	return tf
}

// IDF returns ln(N/df(term)), 0 for unseen terms and an empty corpus.
func (e *Engine[ID]) IDF(term string) float64 {
	t, ok := tokenizer.Normalize(term)
	if !ok {
		return 0
	}
	df, n := e.memIndex.DocFreqAndCount(t)
	return ranker.IDF(n, df)
}

// Score returns the TF-IDF weight of term in document id against the
// current corpus.
func (e *Engine[ID]) Score(term string, id ID) float64 {
	t, ok := tokenizer.Normalize(term)
	if !ok {
		return 0
	}
	tf, df, n := e.memIndex.TermStats(t, id)
	return ranker.Weight(tf, ranker.IDF(n, df))
}

// Search ranks the documents containing at least one query term and
// returns at most topK of them, best first, ties by ascending id. An
// empty query or corpus yields an empty result; topK < 1 is rejected.
func (e *Engine[ID]) Search(query string, topK int) ([]ranker.ScoredDoc[ID], error) {
	res, err := e.Execute(parser.Parse(query), topK)
	if err != nil {
		return nil, err
	}
	return res.Hits, nil
}

// Execute ranks a parsed query. Postings and N are read in one consistent
// view; scores are computed from that view and never retained.
func (e *Engine[ID]) Execute(plan *parser.QueryPlan, topK int) (*Result[ID], error) {
	if topK < 1 {
		return nil, apperrors.InvalidArgument("top_k must be >= 1, got %d", topK)
	}
	res := &Result[ID]{
		Hits:    []ranker.ScoredDoc[ID]{},
		DocFreq: make(map[string]int),
	}
	view := e.memIndex.Lookup(plan.Terms)
	res.Generation = view.Generation
	if plan.Empty() {
		return res, nil
	}
	for term, postings := range view.Postings {
		res.DocFreq[term] = len(postings)
	}
	ranked := ranker.Rank(view.Postings, view.DocCount, 0)
	res.TotalHits = len(ranked)
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	res.Hits = ranked
	return res, nil
}

// Document returns the stored document and its distinct terms.
func (e *Engine[ID]) Document(id ID) (index.Document[ID], bool) {
	return e.memIndex.Document(id)
}

// TermCount returns the vocabulary size.
func (e *Engine[ID]) TermCount() int {
	return e.memIndex.TermCount()
}

// Generation changes whenever the corpus changes. Anything derived from
// scores must be keyed by it.
func (e *Engine[ID]) Generation() uint64 {
	return e.memIndex.Generation()
}

// Size is the approximate in-memory footprint of the postings in bytes.
func (e *Engine[ID]) Size() int64 {
	return e.memIndex.Size()
}
