package index

import "cmp"

// Posting records how often a term occurs in one document. A posting
// exists only for a Frequency of at least 1.
type Posting[ID cmp.Ordered] struct {
	DocID     ID
	Frequency int
}

// PostingList is ordered by ascending DocID.
type PostingList[ID cmp.Ordered] []Posting[ID]

// Document is an indexed document. Text is immutable once added.
type Document[ID cmp.Ordered] struct {
	ID     ID
	Text   string
	Length int
	Terms  []string
}

// Lookup is a consistent view of the postings for a set of terms together
// with the corpus size and generation they were read at.
type Lookup[ID cmp.Ordered] struct {
	DocCount   int
	Generation uint64
	Postings   map[string]PostingList[ID]
}
