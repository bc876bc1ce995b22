package indexing

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/gcbaptista/search-server/index"
	internalErrors "github.com/gcbaptista/search-server/internal/errors"
	"github.com/gcbaptista/search-server/internal/tokenizer"
	"github.com/gcbaptista/search-server/model"
	"github.com/gcbaptista/search-server/store"
)

// Service implements document ingestion for one engine.
// It fulfills the services.Indexer interface.
type Service struct {
	invertedIndex *index.InvertedIndex
	documentStore *store.DocumentStore
	stopWords     tokenizer.StopWordSet
	logger        *zap.Logger
}

// NewService creates a new indexing Service.
func NewService(invertedIndex *index.InvertedIndex, documentStore *store.DocumentStore, stopWords tokenizer.StopWordSet, logger *zap.Logger) (*Service, error) {
	if invertedIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if documentStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	if invertedIndex.Index == nil {
		// Initialize the map if it's nil to prevent panics later
		invertedIndex.Index = make(map[string]index.PostingList)
	}
	if documentStore.Docs == nil {
		documentStore.Docs = make(map[int]store.DocumentData)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		invertedIndex: invertedIndex,
		documentStore: documentStore,
		stopWords:     stopWords,
		logger:        logger,
	}, nil
}

// AddDocument validates and indexes a single document.
// Nothing is written unless every check passes.
func (s *Service) AddDocument(documentID int, text string, status model.DocumentStatus, ratings []int) error {
	tokens, err := s.prepareDocument(documentID, text)
	if err != nil {
		s.logger.Warn("rejected document",
			zap.Int("document_id", documentID),
			zap.Error(err))
		return fmt.Errorf("failed to add document %d: %w", documentID, err)
	}

	s.invertedIndex.AddDocument(documentID, tokens)
	s.documentStore.Add(documentID, store.DocumentData{
		Rating: ComputeAverageRating(ratings),
		Status: status,
	})

	s.logger.Debug("indexed document",
		zap.Int("document_id", documentID),
		zap.Int("tokens", len(tokens)),
		zap.Stringer("status", status))
	return nil
}

// prepareDocument runs every ingestion check and returns the tokens to index.
// All failed checks are reported together.
func (s *Service) prepareDocument(documentID int, text string) ([]string, error) {
	var result *multierror.Error

	if documentID < 0 {
		result = multierror.Append(result, internalErrors.NewValidationError("document_id",
			fmt.Sprintf("document id %d is negative", documentID)))
	} else if s.documentStore.Has(documentID) {
		result = multierror.Append(result, internalErrors.NewValidationError("document_id",
			fmt.Sprintf("document id %d already exists", documentID)))
	}

	tokens, err := tokenizer.Tokenize(text)
	if err != nil {
		result = multierror.Append(result, err)
	} else {
		tokens = s.stopWords.FilterStopWords(tokens)
		for _, token := range tokens {
			if !tokenizer.IsValidWord(token) {
				result = multierror.Append(result, internalErrors.NewValidationError("text",
					fmt.Sprintf("word %q is invalid", token)))
			}
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// ComputeAverageRating returns the mean of ratings truncated toward zero, or 0 for no ratings.
func ComputeAverageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings)
}
