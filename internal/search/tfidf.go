package search

import (
	"math"

	"github.com/gcbaptista/search-server/index"
	"github.com/gcbaptista/search-server/store"
)

// TFIDFCalculator handles TF-IDF score calculations
type TFIDFCalculator struct {
	invertedIndex *index.InvertedIndex
	documentStore *store.DocumentStore
}

// NewTFIDFCalculator creates a new TF-IDF calculator
func NewTFIDFCalculator(invIndex *index.InvertedIndex, docStore *store.DocumentStore) *TFIDFCalculator {
	return &TFIDFCalculator{
		invertedIndex: invIndex,
		documentStore: docStore,
	}
}

// calculateIDF calculates the inverse document frequency
// IDF = ln(N / df) where N = total documents, df = documents containing term.
// Terms that are not indexed return 0 and contribute nothing.
func (calc *TFIDFCalculator) calculateIDF(term string) float64 {
	totalDocs := float64(calc.documentStore.Count())
	if totalDocs == 0 {
		return 0.0
	}

	postings, exists := calc.invertedIndex.Postings(term)
	if !exists || postings.DocumentFrequency() == 0 {
		return 0.0
	}

	return math.Log(totalDocs / float64(postings.DocumentFrequency()))
}

// AccumulateScores adds tf * idf of every term to the documents carrying it.
func (calc *TFIDFCalculator) AccumulateScores(terms []string, scores map[int]float64) {
	for _, term := range terms {
		postings, exists := calc.invertedIndex.Postings(term)
		if !exists {
			continue
		}
		idf := calc.calculateIDF(term)
		for documentID, termFreq := range postings {
			scores[documentID] += termFreq * idf
		}
	}
}
