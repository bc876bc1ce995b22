package index

// InvertedIndex maps a term (token) to the documents containing it
// together with the term frequency in each of them.
// It is not safe for concurrent use.
type InvertedIndex struct {
	Index map[string]PostingList
}

// NewInvertedIndex creates an empty index.
func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{Index: make(map[string]PostingList)}
}

// AddDocument records the postings of one document's tokens.
// Each occurrence contributes 1/len(tokens), so repeated tokens accumulate to
// occurrences/len(tokens). An empty token slice leaves the index untouched.
func (ii *InvertedIndex) AddDocument(documentID int, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	if ii.Index == nil {
		ii.Index = make(map[string]PostingList)
	}

	invTokenCount := 1.0 / float64(len(tokens))
	for _, token := range tokens {
		postings, ok := ii.Index[token]
		if !ok {
			postings = make(PostingList)
			ii.Index[token] = postings
		}
		postings[documentID] += invTokenCount
	}
}

// Postings returns the posting list for term, if the term is indexed.
func (ii *InvertedIndex) Postings(term string) (PostingList, bool) {
	postings, ok := ii.Index[term]
	return postings, ok
}

// Contains reports whether term occurs in the given document.
func (ii *InvertedIndex) Contains(term string, documentID int) bool {
	postings, ok := ii.Index[term]
	if !ok {
		return false
	}
	_, ok = postings[documentID]
	return ok
}

// TermFrequencies collects every term frequency recorded for documentID.
// It scans the whole index and is meant for diagnostics and tests.
func (ii *InvertedIndex) TermFrequencies(documentID int) map[string]float64 {
	freqs := make(map[string]float64)
	for term, postings := range ii.Index {
		if tf, ok := postings[documentID]; ok {
			freqs[term] = tf
		}
	}
	return freqs
}

// TermCount returns the number of distinct indexed terms.
func (ii *InvertedIndex) TermCount() int {
	return len(ii.Index)
}
