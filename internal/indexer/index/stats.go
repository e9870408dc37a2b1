package index

// corpusStats tracks the total document count N and, per term, the number
// of distinct documents containing it. It is guarded by the owning
// MemoryIndex lock.
type corpusStats struct {
	docCount int
	docFreq  map[string]int
}

func newCorpusStats() *corpusStats {
	return &corpusStats{docFreq: make(map[string]int)}
}

// addDocument counts one new document holding the given distinct terms.
func (s *corpusStats) addDocument(terms []string) {
	for _, term := range terms {
		s.docFreq[term]++
	}
	s.docCount++
}

func (s *corpusStats) removeDocument(terms []string) {
	for _, term := range terms {
		if s.docFreq[term] <= 1 {
			delete(s.docFreq, term)
			continue
		}
		s.docFreq[term]--
	}
	s.docCount--
}

func (s *corpusStats) df(term string) int {
	return s.docFreq[term]
}
