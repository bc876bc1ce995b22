package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gcbaptista/search-server/config"
	"github.com/gcbaptista/search-server/index"
	internalErrors "github.com/gcbaptista/search-server/internal/errors"
	"github.com/gcbaptista/search-server/internal/indexing"
	"github.com/gcbaptista/search-server/internal/search"
	"github.com/gcbaptista/search-server/internal/tokenizer"
	"github.com/gcbaptista/search-server/model"
	"github.com/gcbaptista/search-server/services"
	"github.com/gcbaptista/search-server/store"
)

// Engine owns the stop words, inverted index and document catalog of one
// corpus and exposes ingestion, ranked search and matching.
// It implements the services.SearchEngine interface.
//
// Engine is not safe for concurrent use; callers sharing it between
// goroutines must serialize AddDocument against every other method.
type Engine struct {
	stopWords     tokenizer.StopWordSet
	settings      config.EngineSettings
	invertedIndex *index.InvertedIndex
	documentStore *store.DocumentStore
	indexer       *indexing.Service
	searcher      *search.Service
	logger        *zap.Logger
}

var _ services.SearchEngine = (*Engine)(nil)

// New creates an engine with the given stop words and ranking settings.
// Zero-valued settings fields take their defaults. A nil logger disables logging.
func New(stopWords tokenizer.StopWordSet, settings config.EngineSettings, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	settings.ApplyDefaults()

	invIndex := index.NewInvertedIndex()
	docStore := store.NewDocumentStore()

	indexerService, err := indexing.NewService(invIndex, docStore, stopWords, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer service: %w", err)
	}
	searchService, err := search.NewService(invIndex, docStore, stopWords, settings, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	logger.Debug("engine created",
		zap.Int("stop_words", stopWords.Len()),
		zap.Int("max_results", settings.MaxResultDocumentCount),
		zap.Float64("epsilon", settings.RelevanceEpsilon))

	return &Engine{
		stopWords:     stopWords,
		settings:      settings,
		invertedIndex: invIndex,
		documentStore: docStore,
		indexer:       indexerService,
		searcher:      searchService,
		logger:        logger,
	}, nil
}

// NewFromWords creates an engine from a list of stop words.
func NewFromWords(stopWords []string, settings config.EngineSettings, logger *zap.Logger) (*Engine, error) {
	set, err := tokenizer.NewStopWordSet(stopWords)
	if err != nil {
		return nil, fmt.Errorf("invalid stop words: %w", err)
	}
	return New(set, settings, logger)
}

// NewFromText creates an engine from a space-delimited stop word string.
func NewFromText(stopWords string, settings config.EngineSettings, logger *zap.Logger) (*Engine, error) {
	set, err := tokenizer.NewStopWordSetFromText(stopWords)
	if err != nil {
		return nil, err
	}
	return New(set, settings, logger)
}

// AddDocument indexes a document. It fails with ErrInvalidInput for negative
// or duplicate ids and for text containing control characters, leaving the
// engine unchanged.
func (e *Engine) AddDocument(documentID int, text string, status model.DocumentStatus, ratings []int) error {
	return e.indexer.AddDocument(documentID, text, status, ratings)
}

// FindTopDocuments returns the best documents for rawQuery accepted by predicate.
// A nil predicate keeps documents with status ACTUAL.
func (e *Engine) FindTopDocuments(rawQuery string, predicate model.DocumentPredicate) ([]model.Document, error) {
	return e.searcher.FindTopDocuments(rawQuery, predicate)
}

// FindTopDocumentsByStatus keeps only documents with the given status.
func (e *Engine) FindTopDocumentsByStatus(rawQuery string, status model.DocumentStatus) ([]model.Document, error) {
	return e.searcher.FindTopDocuments(rawQuery, model.StatusPredicate(status))
}

// FindTopDocumentsDefault keeps only ACTUAL documents.
func (e *Engine) FindTopDocumentsDefault(rawQuery string) ([]model.Document, error) {
	return e.FindTopDocumentsByStatus(rawQuery, model.StatusActual)
}

// MatchDocument reports the plus-words of rawQuery present in documentID.
func (e *Engine) MatchDocument(rawQuery string, documentID int) (model.MatchResult, error) {
	return e.searcher.MatchDocument(rawQuery, documentID)
}

// MatchDocuments runs MatchDocument for every document in insertion order.
func (e *Engine) MatchDocuments(rawQuery string) ([]model.MatchResult, error) {
	return e.searcher.MatchDocuments(rawQuery)
}

// GetDocumentCount returns the number of indexed documents.
func (e *Engine) GetDocumentCount() int {
	return e.documentStore.Count()
}

// GetDocumentID returns the id of the index-th ingested document.
func (e *Engine) GetDocumentID(index int) (int, error) {
	id, ok := e.documentStore.IDAt(index)
	if !ok {
		return 0, internalErrors.NewOutOfRangeError(index, len(e.documentStore.DocumentIDs))
	}
	return id, nil
}

// StopWords returns the engine's stop words in sorted order.
func (e *Engine) StopWords() []string {
	return e.stopWords.Words()
}

// Settings returns the effective ranking settings.
func (e *Engine) Settings() config.EngineSettings {
	return e.settings
}

// Stats summarizes the engine contents.
func (e *Engine) Stats() Stats {
	return Stats{
		DocumentCount: e.documentStore.Count(),
		TermCount:     e.invertedIndex.TermCount(),
		StopWordCount: e.stopWords.Len(),
	}
}

// Stats is a snapshot of engine size.
type Stats struct {
	DocumentCount int `json:"document_count"`
	TermCount     int `json:"term_count"`
	StopWordCount int `json:"stop_word_count"`
}
