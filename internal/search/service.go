package search

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/gcbaptista/search-server/config"
	"github.com/gcbaptista/search-server/index"
	internalErrors "github.com/gcbaptista/search-server/internal/errors"
	"github.com/gcbaptista/search-server/internal/query"
	"github.com/gcbaptista/search-server/internal/tokenizer"
	"github.com/gcbaptista/search-server/model"
	"github.com/gcbaptista/search-server/store"
)

// Service implements ranked search and document matching over one engine's data.
// It fulfills the services.Searcher and services.Matcher interfaces.
type Service struct {
	invertedIndex *index.InvertedIndex
	documentStore *store.DocumentStore
	stopWords     tokenizer.StopWordSet
	settings      config.EngineSettings
	calculator    *TFIDFCalculator
	logger        *zap.Logger
}

// NewService creates a new search Service.
func NewService(invIndex *index.InvertedIndex, docStore *store.DocumentStore, stopWords tokenizer.StopWordSet, settings config.EngineSettings, logger *zap.Logger) (*Service, error) {
	if invIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if docStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, internalErrors.NewValidationError("engine", fmt.Sprint(problems))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		invertedIndex: invIndex,
		documentStore: docStore,
		stopWords:     stopWords,
		settings:      settings,
		calculator:    NewTFIDFCalculator(invIndex, docStore),
		logger:        logger,
	}, nil
}

// FindTopDocuments returns at most MaxResultDocumentCount documents matching
// rawQuery and accepted by predicate, best first.
func (s *Service) FindTopDocuments(rawQuery string, predicate model.DocumentPredicate) ([]model.Document, error) {
	q, err := query.Parse(rawQuery, s.stopWords)
	if err != nil {
		s.logger.Warn("rejected query", zap.String("query", rawQuery), zap.Error(err))
		return nil, err
	}
	if predicate == nil {
		predicate = model.StatusPredicate(model.StatusActual)
	}

	candidates := s.findAllDocuments(q, predicate)
	s.sortCandidates(candidates)

	if len(candidates) > s.settings.MaxResultDocumentCount {
		candidates = candidates[:s.settings.MaxResultDocumentCount]
	}

	results := make([]model.Document, len(candidates))
	for i, c := range candidates {
		results[i] = c.toDocument()
	}

	s.logger.Debug("search completed",
		zap.String("query", rawQuery),
		zap.Int("plus_words", len(q.PlusWords)),
		zap.Int("minus_words", len(q.MinusWords)),
		zap.Int("results", len(results)))
	return results, nil
}

// findAllDocuments scores, excludes and filters every candidate.
func (s *Service) findAllDocuments(q query.Query, predicate model.DocumentPredicate) []candidateHit {
	scores := make(map[int]float64)
	if len(q.PlusWords) == 0 {
		// Nothing to score: every document is a candidate with relevance 0.
		for _, documentID := range s.documentStore.DocumentIDs {
			scores[documentID] = 0
		}
	} else {
		s.calculator.AccumulateScores(q.SortedPlusWords(), scores)
	}

	for minusWord := range q.MinusWords {
		postings, ok := s.invertedIndex.Postings(minusWord)
		if !ok {
			continue
		}
		for documentID := range postings {
			delete(scores, documentID)
		}
	}

	candidates := make([]candidateHit, 0, len(scores))
	for documentID, score := range scores {
		data, ok := s.documentStore.Get(documentID)
		if !ok {
			continue
		}
		if !predicate(documentID, data.Status, data.Rating) {
			continue
		}
		candidates = append(candidates, candidateHit{
			documentID: documentID,
			score:      score,
			rating:     data.Rating,
			status:     data.Status,
		})
	}
	return candidates
}

// sortCandidates orders by relevance, then rating when relevance is within
// epsilon, then by ascending document id so repeated calls agree.
func (s *Service) sortCandidates(candidates []candidateHit) {
	epsilon := s.settings.RelevanceEpsilon
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if math.Abs(a.score-b.score) < epsilon {
			if a.rating != b.rating {
				return a.rating > b.rating
			}
			return a.documentID < b.documentID
		}
		return a.score > b.score
	})
}

// MatchDocument returns the plus-words of rawQuery found in documentID.
// The word list is empty when any minus-word occurs in the document.
func (s *Service) MatchDocument(rawQuery string, documentID int) (model.MatchResult, error) {
	q, err := query.Parse(rawQuery, s.stopWords)
	if err != nil {
		return model.MatchResult{}, err
	}
	return s.matchParsed(q, documentID)
}

// MatchDocuments runs MatchDocument for every document in insertion order.
func (s *Service) MatchDocuments(rawQuery string) ([]model.MatchResult, error) {
	q, err := query.Parse(rawQuery, s.stopWords)
	if err != nil {
		return nil, err
	}

	results := make([]model.MatchResult, 0, s.documentStore.Count())
	for _, documentID := range s.documentStore.DocumentIDs {
		result, err := s.matchParsed(q, documentID)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Service) matchParsed(q query.Query, documentID int) (model.MatchResult, error) {
	data, ok := s.documentStore.Get(documentID)
	if !ok {
		return model.MatchResult{}, internalErrors.NewDocumentNotFoundError(documentID)
	}

	result := model.MatchResult{DocumentID: documentID, Words: []string{}, Status: data.Status}
	for minusWord := range q.MinusWords {
		if s.invertedIndex.Contains(minusWord, documentID) {
			return result, nil
		}
	}
	for _, plusWord := range q.SortedPlusWords() {
		if s.invertedIndex.Contains(plusWord, documentID) {
			result.Words = append(result.Words, plusWord)
		}
	}
	return result, nil
}
