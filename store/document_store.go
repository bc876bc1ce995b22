package store

import (
	"github.com/gcbaptista/search-server/model"
)

// DocumentData is the catalog entry kept for every indexed document.
type DocumentData struct {
	Rating int
	Status model.DocumentStatus
}

// DocumentStore is the document catalog: per-document rating and status plus
// the order in which documents were ingested.
// It is not safe for concurrent use.
type DocumentStore struct {
	Docs        map[int]DocumentData
	DocumentIDs []int // insertion order
}

// NewDocumentStore creates an empty catalog.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		Docs:        make(map[int]DocumentData),
		DocumentIDs: make([]int, 0),
	}
}

// Add records a document. The caller is responsible for rejecting duplicates.
func (ds *DocumentStore) Add(documentID int, data DocumentData) {
	if ds.Docs == nil {
		ds.Docs = make(map[int]DocumentData)
	}
	ds.Docs[documentID] = data
	ds.DocumentIDs = append(ds.DocumentIDs, documentID)
}

// Get returns the catalog entry for documentID.
func (ds *DocumentStore) Get(documentID int) (DocumentData, bool) {
	data, ok := ds.Docs[documentID]
	return data, ok
}

// Has reports whether documentID is present.
func (ds *DocumentStore) Has(documentID int) bool {
	_, ok := ds.Docs[documentID]
	return ok
}

// Count returns the number of documents.
func (ds *DocumentStore) Count() int {
	return len(ds.Docs)
}

// IDAt returns the id of the i-th ingested document.
func (ds *DocumentStore) IDAt(i int) (int, bool) {
	if i < 0 || i >= len(ds.DocumentIDs) {
		return 0, false
	}
	return ds.DocumentIDs[i], true
}

// IDs returns a copy of the ids in insertion order.
func (ds *DocumentStore) IDs() []int {
	ids := make([]int, len(ds.DocumentIDs))
	copy(ids, ds.DocumentIDs)
	return ids
}
