// Package ranker scores candidate documents with raw-count TF-IDF and
// orders them deterministically.
//
//	idf(t)    = ln(N / df(t))   (0 when N or df(t) is 0)
//	w(t, d)   = tf(t, d) * idf(t)
//	score(d)  = sum of w(t, d) over the distinct query terms d contains
package ranker

import (
	"cmp"
	"math"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer/index"
)

type ScoredDoc[ID cmp.Ordered] struct {
	DocID ID      `json:"doc_id"`
	Score float64 `json:"score"`
}

// IDF returns ln(totalDocs/docFreq), or 0 for an empty corpus or a term
// no document contains.
func IDF(totalDocs int, docFreq int) float64 {
	if totalDocs <= 0 || docFreq <= 0 {
		return 0
	}
	return math.Log(float64(totalDocs) / float64(docFreq))
}

// Weight is the TF-IDF weight of a term occurring termFreq times in a
// document.
func Weight(termFreq int, idf float64) float64 {
	return float64(termFreq) * idf
}

// Rank sums the weights of every posting per document and returns the
// documents sorted by descending score, ties broken by ascending DocID.
// Each key of postingsPerTerm must be a distinct query term; its document
// frequency is the length of its posting list. A limit <= 0 keeps every
// document.
func Rank[ID cmp.Ordered](
	postingsPerTerm map[string]index.PostingList[ID],
	totalDocs int,
	limit int,
) []ScoredDoc[ID] {
	// Terms are summed in a fixed order so equal inputs give bit-identical
	// scores.
	terms := make([]string, 0, len(postingsPerTerm))
	for term := range postingsPerTerm {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	scores := make(map[ID]float64)
	for _, term := range terms {
		postings := postingsPerTerm[term]
		idf := IDF(totalDocs, len(postings))
		for _, posting := range postings {
			scores[posting.DocID] += Weight(posting.Frequency, idf)
		}
	}
	result := make([]ScoredDoc[ID], 0, len(scores))
	for docID, score := range scores {
		result = append(result, ScoredDoc[ID]{
			DocID: docID,
			Score: score,
		})
	}
	Sort(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Sort orders docs by descending score, then ascending DocID.
func Sort[ID cmp.Ordered](docs []ScoredDoc[ID]) {
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Score != docs[j].Score {
			return docs[i].Score > docs[j].Score
		}
		return docs[i].DocID < docs[j].DocID
	})
}
