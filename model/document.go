package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DocumentStatus is an opaque tag attached to every indexed document.
// The engine never transitions it; it is only consulted by predicates.
type DocumentStatus int

const (
	StatusActual DocumentStatus = iota
	StatusIrrelevant
	StatusBanned
	StatusRemoved
)

var statusNames = [...]string{"ACTUAL", "IRRELEVANT", "BANNED", "REMOVED"}

func (s DocumentStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("DocumentStatus(%d)", int(s))
	}
	return statusNames[s]
}

// ParseDocumentStatus converts a status name (case-insensitive) to a DocumentStatus.
func ParseDocumentStatus(name string) (DocumentStatus, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range statusNames {
		if n == upper {
			return DocumentStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown document status %q", name)
}

// MarshalJSON encodes the status as its name.
func (s DocumentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either the status name or its numeric value.
func (s *DocumentStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseDocumentStatus(name)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("document status must be a string or integer: %w", err)
	}
	if n < 0 || n >= len(statusNames) {
		return fmt.Errorf("document status %d out of range", n)
	}
	*s = DocumentStatus(n)
	return nil
}

// UnmarshalYAML lets seed documents in the server config use status names.
func (s *DocumentStatus) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseDocumentStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Document is a single ranked search hit.
type Document struct {
	ID        int     `json:"document_id"`
	Relevance float64 `json:"relevance"`
	Rating    int     `json:"rating"`
}

// MatchResult reports which plus-words of a query occur in one document.
type MatchResult struct {
	DocumentID int            `json:"document_id"`
	Words      []string       `json:"words"`
	Status     DocumentStatus `json:"status"`
}

// DocumentPredicate decides whether a scored candidate is kept in the results.
type DocumentPredicate func(documentID int, status DocumentStatus, rating int) bool

// StatusPredicate keeps documents with exactly the given status.
func StatusPredicate(status DocumentStatus) DocumentPredicate {
	return func(_ int, documentStatus DocumentStatus, _ int) bool {
		return documentStatus == status
	}
}
