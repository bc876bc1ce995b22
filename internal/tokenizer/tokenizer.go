package tokenizer

import (
	"fmt"
	"strings"

	internalErrors "github.com/gcbaptista/search-server/internal/errors"
)

// lastControlChar is the highest ASCII code point treated as a control character.
const lastControlChar = 31

// IsValidWord reports whether text is free of ASCII control characters (0-31).
func IsValidWord(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] <= lastControlChar {
			return false
		}
	}
	return true
}

// ValidateText returns an InvalidInput error if text contains a control character.
func ValidateText(text string) error {
	for i := 0; i < len(text); i++ {
		if text[i] <= lastControlChar {
			return internalErrors.NewValidationError("text",
				fmt.Sprintf("control character 0x%02x at byte %d in %q", text[i], i, text))
		}
	}
	return nil
}

// SplitIntoWords splits text on spaces and drops empty tokens.
// It does no validation; use Tokenize for untrusted input.
func SplitIntoWords(text string) []string {
	split := strings.Split(text, " ")

	words := make([]string, 0, len(split)) // Initialize as empty slice, not nil
	for _, s := range split {
		if s != "" {
			words = append(words, s)
		}
	}
	return words
}

// Tokenize validates text and splits it into whitespace-delimited tokens.
func Tokenize(text string) ([]string, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}
	return SplitIntoWords(text), nil
}
