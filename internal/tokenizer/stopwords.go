package tokenizer

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"

	internalErrors "github.com/gcbaptista/search-server/internal/errors"
)

// StopWordSet is an immutable set of tokens excluded from indexing and querying.
// The zero value is an empty set.
type StopWordSet struct {
	words map[string]struct{}
}

// NewStopWordSet builds a set from words. Empty strings are ignored.
// Every word containing a control character is reported in the returned error.
func NewStopWordSet(words []string) (StopWordSet, error) {
	var result *multierror.Error
	set := make(map[string]struct{}, len(words))

	for _, word := range words {
		if !IsValidWord(word) {
			result = multierror.Append(result, internalErrors.NewValidationError("stop_words",
				fmt.Sprintf("stop word %q contains a control character", word)))
			continue
		}
		if word != "" {
			set[word] = struct{}{}
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return StopWordSet{}, err
	}
	return StopWordSet{words: set}, nil
}

// NewStopWordSetFromText builds a set from a single space-delimited string.
func NewStopWordSetFromText(text string) (StopWordSet, error) {
	if err := ValidateText(text); err != nil {
		return StopWordSet{}, fmt.Errorf("invalid stop words: %w", err)
	}
	return NewStopWordSet(SplitIntoWords(text))
}

// Contains reports whether word is a stop word.
func (s StopWordSet) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of distinct stop words.
func (s StopWordSet) Len() int {
	return len(s.words)
}

// Words returns the stop words in sorted order.
func (s StopWordSet) Words() []string {
	words := make([]string, 0, len(s.words))
	for w := range s.words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// FilterStopWords returns tokens that are not stop words, preserving order.
func (s StopWordSet) FilterStopWords(tokens []string) []string {
	filtered := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !s.Contains(token) {
			filtered = append(filtered, token)
		}
	}
	return filtered
}
