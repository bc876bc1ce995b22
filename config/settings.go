// Package config provides configuration structures for the search engine.
// It defines ranking and request-history settings plus the server configuration file.
package config

import (
	"fmt"
)

const (
	// DefaultMaxResultDocumentCount is the number of hits returned by a search.
	DefaultMaxResultDocumentCount = 5
	// DefaultRelevanceEpsilon is the score difference under which two hits are tied.
	DefaultRelevanceEpsilon = 1e-6
	// DefaultHistoryWindow is one synthetic day of tracked requests, one tick per request.
	DefaultHistoryWindow = 1440
)

// EngineSettings contains the ranking options of a search engine instance.
type EngineSettings struct {
	MaxResultDocumentCount int     `json:"max_result_document_count" yaml:"max_result_document_count"` // Hits kept after sorting (top-K)
	RelevanceEpsilon       float64 `json:"relevance_epsilon" yaml:"relevance_epsilon"`                 // Scores closer than this are ordered by rating
}

// DefaultEngineSettings returns the settings used when nothing is configured.
func DefaultEngineSettings() EngineSettings {
	s := EngineSettings{}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults applies default values to unset engine settings
func (settings *EngineSettings) ApplyDefaults() {
	if settings.MaxResultDocumentCount == 0 {
		settings.MaxResultDocumentCount = DefaultMaxResultDocumentCount
	}
	if settings.RelevanceEpsilon == 0 {
		settings.RelevanceEpsilon = DefaultRelevanceEpsilon
	}
}

// Validate returns one message per invalid setting.
func (settings *EngineSettings) Validate() []string {
	var errors []string
	if settings.MaxResultDocumentCount < 1 {
		errors = append(errors, fmt.Sprintf("max_result_document_count must be positive, got %d", settings.MaxResultDocumentCount))
	}
	if settings.RelevanceEpsilon < 0 {
		errors = append(errors, fmt.Sprintf("relevance_epsilon must not be negative, got %g", settings.RelevanceEpsilon))
	}
	return errors
}

// HistorySettings configures the request history tracker.
type HistorySettings struct {
	WindowSize int `json:"window_size" yaml:"window_size"` // Number of most recent requests retained
}

// DefaultHistorySettings returns the settings used when nothing is configured.
func DefaultHistorySettings() HistorySettings {
	s := HistorySettings{}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults applies default values to unset history settings
func (settings *HistorySettings) ApplyDefaults() {
	if settings.WindowSize == 0 {
		settings.WindowSize = DefaultHistoryWindow
	}
}

// Validate returns one message per invalid setting.
func (settings *HistorySettings) Validate() []string {
	var errors []string
	if settings.WindowSize < 1 {
		errors = append(errors, fmt.Sprintf("window_size must be positive, got %d", settings.WindowSize))
	}
	return errors
}
