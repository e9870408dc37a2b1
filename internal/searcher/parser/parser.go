// Package parser turns a free-text query into the bag of distinct terms the
// ranker scores against.
package parser

import (
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer/tokenizer"
)

type QueryPlan struct {
	// Terms holds each distinct query term once, in first-seen order.
	Terms    []string
	RawQuery string
}

// Parse tokenizes query exactly like document text and drops repeated
// terms, so "dog dog cat" weighs dog once.
func Parse(query string) *QueryPlan {
	plan := &QueryPlan{
		Terms:    make([]string, 0),
		RawQuery: query,
	}
	seen := make(map[string]struct{})
	for _, term := range tokenizer.Terms(query) {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		plan.Terms = append(plan.Terms, term)
	}
	return plan
}

// Empty reports whether the query has no terms left after tokenization.
func (p *QueryPlan) Empty() bool {
	return len(p.Terms) == 0
}
