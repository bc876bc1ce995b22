// Package testing provides utilities and helpers for testing the search engine.
package testing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/search-server/config"
	"github.com/gcbaptista/search-server/internal/engine"
	"github.com/gcbaptista/search-server/model"
)

// TestDocument is a document to ingest into a test engine.
type TestDocument struct {
	ID      int
	Text    string
	Status  model.DocumentStatus
	Ratings []int
}

// DefaultStopWords are the stop words used by CreateTestEngine.
var DefaultStopWords = []string{"and", "in", "on"}

// PetDocuments is the small corpus used across engine, tracker and API tests.
var PetDocuments = []TestDocument{
	{ID: 0, Text: "white cat and fancy collar", Status: model.StatusActual, Ratings: []int{8, -3}},
	{ID: 1, Text: "fluffy cat fluffy tail", Status: model.StatusActual, Ratings: []int{7, 2, 7}},
	{ID: 2, Text: "groomed dog expressive eyes", Status: model.StatusActual, Ratings: []int{5, -12, 2, 1}},
	{ID: 3, Text: "groomed starling eugene", Status: model.StatusBanned, Ratings: []int{9}},
}

// CreateTestEngine creates an empty engine with DefaultStopWords and default settings.
func CreateTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return CreateTestEngineWithSettings(t, config.EngineSettings{})
}

// CreateTestEngineWithSettings creates an empty engine with DefaultStopWords.
func CreateTestEngineWithSettings(t *testing.T, settings config.EngineSettings) *engine.Engine {
	t.Helper()
	eng, err := engine.NewFromWords(DefaultStopWords, settings, nil)
	require.NoError(t, err, "Failed to create test engine")
	return eng
}

// AddTestDocuments ingests docs into eng, failing the test on any error.
func AddTestDocuments(t *testing.T, eng *engine.Engine, docs []TestDocument) {
	t.Helper()
	for _, d := range docs {
		err := eng.AddDocument(d.ID, d.Text, d.Status, d.Ratings)
		require.NoError(t, err, "Failed to add test document %d", d.ID)
	}
}

// CreatePetEngine creates an engine loaded with PetDocuments.
func CreatePetEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := CreateTestEngine(t)
	AddTestDocuments(t, eng, PetDocuments)
	return eng
}

// DocumentIDs extracts the ids of search results in order.
func DocumentIDs(docs []model.Document) []int {
	ids := make([]int, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids
}
