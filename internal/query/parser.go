// Package query turns raw query text into plus-word and minus-word sets.
//
// Parsing runs in two independent steps: the raw text is tokenized and
// checked for control characters by the tokenizer, then every token is
// classified as a plus-word or a minus-word.
package query

import (
	"fmt"
	"sort"
	"strings"

	internalErrors "github.com/gcbaptista/search-server/internal/errors"
	"github.com/gcbaptista/search-server/internal/tokenizer"
)

const minusPrefix = "-"

// Word is a single classified query token.
type Word struct {
	Data    string
	IsMinus bool
	IsStop  bool
}

// Query holds the distinct plus-words and minus-words of a parsed query.
// A word may appear in both sets; exclusion wins when ranking.
type Query struct {
	PlusWords  map[string]struct{}
	MinusWords map[string]struct{}
}

// ParseWord classifies an already-validated token.
func ParseWord(text string, stopWords tokenizer.StopWordSet) (Word, error) {
	if text == "" {
		return Word{}, internalErrors.NewValidationError("query", "query word is empty")
	}

	word := text
	isMinus := false
	if strings.HasPrefix(word, minusPrefix) {
		isMinus = true
		word = word[len(minusPrefix):]
	}
	if word == "" {
		return Word{}, internalErrors.NewValidationError("query",
			fmt.Sprintf("query word %q has no text after the minus sign", text))
	}
	if strings.HasPrefix(word, minusPrefix) {
		return Word{}, internalErrors.NewValidationError("query",
			fmt.Sprintf("query word %q has more than one leading minus sign", text))
	}

	return Word{Data: word, IsMinus: isMinus, IsStop: stopWords.Contains(word)}, nil
}

// Parse validates rawQuery and builds its plus-word and minus-word sets.
func Parse(rawQuery string, stopWords tokenizer.StopWordSet) (Query, error) {
	tokens, err := tokenizer.Tokenize(rawQuery)
	if err != nil {
		return Query{}, fmt.Errorf("invalid query: %w", err)
	}

	q := Query{
		PlusWords:  make(map[string]struct{}),
		MinusWords: make(map[string]struct{}),
	}
	for _, token := range tokens {
		word, err := ParseWord(token, stopWords)
		if err != nil {
			return Query{}, fmt.Errorf("invalid query: %w", err)
		}
		if word.IsStop {
			continue
		}
		if word.IsMinus {
			q.MinusWords[word.Data] = struct{}{}
		} else {
			q.PlusWords[word.Data] = struct{}{}
		}
	}
	return q, nil
}

// SortedPlusWords returns the plus-words in lexical order.
func (q Query) SortedPlusWords() []string {
	return sortedKeys(q.PlusWords)
}

// SortedMinusWords returns the minus-words in lexical order.
func (q Query) SortedMinusWords() []string {
	return sortedKeys(q.MinusWords)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
