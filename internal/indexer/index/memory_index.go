package index

import (
	"cmp"
	"slices"
	"sort"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/errors"
)

// MemoryIndex is an in-memory inverted index plus the corpus statistics
// derived from it. Every mutation holds the write lock for its whole commit,
// so readers see a document either fully indexed or not at all.
type MemoryIndex[ID cmp.Ordered] struct {
	mu         sync.RWMutex
	index      map[string]map[ID]*Posting[ID]
	docs       map[ID]*Document[ID]
	stats      *corpusStats
	size       int64
	generation uint64
}

func NewMemoryIndex[ID cmp.Ordered]() *MemoryIndex[ID] {
	return &MemoryIndex[ID]{
		index: make(map[string]map[ID]*Posting[ID]),
		docs:  make(map[ID]*Document[ID]),
		stats: newCorpusStats(),
	}
}

// AddDocument indexes text under id. It fails with ErrDuplicateDocument if
// id is already present, leaving the index untouched.
func (m *MemoryIndex[ID]) AddDocument(id ID, text string) error {
	doc, termData := analyze(id, text)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.docs[id]; exists {
		return apperrors.Duplicate(id)
	}
	m.commit(doc, termData)
	return nil
}

// ReplaceDocument removes any existing document under id and indexes text
// in its place as one atomic step. It reports whether a document was
// replaced.
func (m *MemoryIndex[ID]) ReplaceDocument(id ID, text string) bool {
	doc, termData := analyze(id, text)

	m.mu.Lock()
	defer m.mu.Unlock()
	_, replaced := m.docs[id]
	if replaced {
		m.remove(id)
	}
	m.commit(doc, termData)
	return replaced
}

// RemoveDocument drops id and all of its postings. Terms left without
// postings are removed from the index.
func (m *MemoryIndex[ID]) RemoveDocument(id ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.docs[id]; !exists {
		return apperrors.NotFound(id)
	}
	m.remove(id)
	return nil
}

// analyze tokenizes text and stages one posting per distinct term. It runs
// outside the lock.
func analyze[ID cmp.Ordered](id ID, text string) (*Document[ID], map[string]*Posting[ID]) {
	tokens := tokenizer.Terms(text)
	termData := make(map[string]*Posting[ID])
	for _, term := range tokens {
		p, exists := termData[term]
		if !exists {
			p = &Posting[ID]{DocID: id}
			termData[term] = p
		}
		p.Frequency++
	}
	terms := make([]string, 0, len(termData))
	for term := range termData {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return &Document[ID]{
		ID:     id,
		Text:   text,
		Length: len(tokens),
		Terms:  terms,
	}, termData
}

func (m *MemoryIndex[ID]) commit(doc *Document[ID], termData map[string]*Posting[ID]) {
	for term, posting := range termData {
		if _, exists := m.index[term]; !exists {
			m.index[term] = make(map[ID]*Posting[ID])
		}
		m.index[term][doc.ID] = posting
		m.size += postingSize(term)
	}
	m.stats.addDocument(doc.Terms)
	m.docs[doc.ID] = doc
	m.generation++
}

func (m *MemoryIndex[ID]) remove(id ID) {
	doc := m.docs[id]
	for _, term := range doc.Terms {
		docs := m.index[term]
		if _, ok := docs[id]; ok {
			m.size -= postingSize(term)
		}
		delete(docs, id)
		if len(docs) == 0 {
			delete(m.index, term)
		}
	}
	m.stats.removeDocument(doc.Terms)
	delete(m.docs, id)
	m.generation++
}

// postingSize is a rough per-posting heap estimate used by Size.
func postingSize(term string) int64 {
	return int64(len(term) + 64)
}

// Lookup reads the postings of all terms and the document count under one
// read lock. Terms without postings are absent from the result.
func (m *MemoryIndex[ID]) Lookup(terms []string) Lookup[ID] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := Lookup[ID]{
		DocCount:   m.stats.docCount,
		Generation: m.generation,
		Postings:   make(map[string]PostingList[ID], len(terms)),
	}
	for _, term := range terms {
		if postings := m.postings(term); len(postings) > 0 {
			result.Postings[term] = postings
		}
	}
	return result
}

func (m *MemoryIndex[ID]) postings(term string) PostingList[ID] {
	docs, exists := m.index[term]
	if !exists {
		return nil
	}
	result := make(PostingList[ID], 0, len(docs))
	for _, posting := range docs {
		result = append(result, *posting)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DocID < result[j].DocID
	})
	return result
}

// TermStats returns the frequency of term in document id, the document
// frequency of term and the corpus size, read together.
func (m *MemoryIndex[ID]) TermStats(term string, id ID) (tf, df, docCount int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.index[term][id]; ok {
		tf = p.Frequency
	}
	return tf, m.stats.df(term), m.stats.docCount
}

// DocFreqAndCount returns df(term) and N read together.
func (m *MemoryIndex[ID]) DocFreqAndCount(term string) (df, docCount int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.df(term), m.stats.docCount
}

func (m *MemoryIndex[ID]) DocFreq(term string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.df(term)
}

func (m *MemoryIndex[ID]) DocCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.docCount
}

// TermCount returns the vocabulary size.
func (m *MemoryIndex[ID]) TermCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.index)
}

func (m *MemoryIndex[ID]) Document(id ID) (Document[ID], bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[id]
	if !ok {
		return Document[ID]{}, false
	}
	out := *doc
	out.Terms = slices.Clone(doc.Terms)
	return out, true
}

// Generation increases on every successful mutation.
func (m *MemoryIndex[ID]) Generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation
}

func (m *MemoryIndex[ID]) Size() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size
}
