package services

import (
	"github.com/gcbaptista/search-server/model"
)

// Indexer adds documents to the index.
type Indexer interface {
	AddDocument(documentID int, text string, status model.DocumentStatus, ratings []int) error
}

// Searcher runs ranked queries. It is the only capability the request
// history tracker needs from an engine.
type Searcher interface {
	FindTopDocuments(rawQuery string, predicate model.DocumentPredicate) ([]model.Document, error)
}

// Matcher explains which query words occur in a document.
type Matcher interface {
	MatchDocument(rawQuery string, documentID int) (model.MatchResult, error)
	MatchDocuments(rawQuery string) ([]model.MatchResult, error)
}

// DocumentLookup exposes the document catalog.
type DocumentLookup interface {
	GetDocumentCount() int
	GetDocumentID(index int) (int, error)
}

// SearchEngine combines all engine capabilities.
type SearchEngine interface {
	Indexer
	Searcher
	Matcher
	DocumentLookup
}
