// Package analytics tracks recent search requests over a sliding window of
// logical time and counts the ones that returned nothing.
package analytics

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gcbaptista/search-server/config"
	"github.com/gcbaptista/search-server/model"
	"github.com/gcbaptista/search-server/services"
)

// RequestRecord is one tracked search request.
type RequestRecord struct {
	Timestamp uint64 `json:"timestamp"`
	Results   int    `json:"results"`
}

// RequestStats is a snapshot of the tracker state.
type RequestStats struct {
	Tracked    uint64 `json:"tracked"`     // requests recorded since creation
	Retained   int    `json:"retained"`    // requests inside the window
	NoResult   int    `json:"no_result"`   // retained requests with zero results
	WindowSize int    `json:"window_size"` // maximum retained requests
}

// RequestTracker decorates a searcher and remembers the result counts of the
// most recent WindowSize requests. Every tracked request advances the logical
// clock by one tick; a record is evicted once it is WindowSize ticks old.
//
// The searcher is only read from. RequestTracker is not safe for concurrent use.
type RequestTracker struct {
	searcher services.Searcher
	window   int
	logger   *zap.Logger

	records       []RequestRecord // ring buffer of capacity window
	head          int             // index of the oldest record
	size          int
	currentTime   uint64
	noResultCount int
}

// NewRequestTracker creates a tracker around searcher.
func NewRequestTracker(searcher services.Searcher, settings config.HistorySettings, logger *zap.Logger) (*RequestTracker, error) {
	if searcher == nil {
		return nil, fmt.Errorf("searcher cannot be nil")
	}
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid history settings: %v", problems)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestTracker{
		searcher: searcher,
		window:   settings.WindowSize,
		logger:   logger,
		records:  make([]RequestRecord, settings.WindowSize),
	}, nil
}

// AddFindRequest runs the search and records its result count.
// The search result is returned unchanged. Failed searches are not recorded.
func (rt *RequestTracker) AddFindRequest(rawQuery string, predicate model.DocumentPredicate) ([]model.Document, error) {
	results, err := rt.searcher.FindTopDocuments(rawQuery, predicate)
	if err != nil {
		return nil, err
	}
	rt.addRequest(len(results))
	return results, nil
}

// AddFindRequestByStatus tracks a search restricted to one status.
func (rt *RequestTracker) AddFindRequestByStatus(rawQuery string, status model.DocumentStatus) ([]model.Document, error) {
	return rt.AddFindRequest(rawQuery, model.StatusPredicate(status))
}

// AddFindRequestDefault tracks a search over ACTUAL documents.
func (rt *RequestTracker) AddFindRequestDefault(rawQuery string) ([]model.Document, error) {
	return rt.AddFindRequestByStatus(rawQuery, model.StatusActual)
}

func (rt *RequestTracker) addRequest(results int) {
	rt.currentTime++

	for rt.size > 0 && rt.currentTime-rt.records[rt.head].Timestamp >= uint64(rt.window) {
		if rt.records[rt.head].Results == 0 {
			rt.noResultCount--
		}
		rt.records[rt.head] = RequestRecord{}
		rt.head = (rt.head + 1) % rt.window
		rt.size--
	}

	tail := (rt.head + rt.size) % rt.window
	rt.records[tail] = RequestRecord{Timestamp: rt.currentTime, Results: results}
	rt.size++
	if results == 0 {
		rt.noResultCount++
		rt.logger.Debug("request returned no results",
			zap.Uint64("timestamp", rt.currentTime),
			zap.Int("no_result_requests", rt.noResultCount))
	}
}

// NoResultCount returns how many retained requests returned no documents.
func (rt *RequestTracker) NoResultCount() int {
	return rt.noResultCount
}

// Len returns the number of retained requests.
func (rt *RequestTracker) Len() int {
	return rt.size
}

// Records returns the retained requests, oldest first.
func (rt *RequestTracker) Records() []RequestRecord {
	out := make([]RequestRecord, rt.size)
	for i := 0; i < rt.size; i++ {
		out[i] = rt.records[(rt.head+i)%rt.window]
	}
	return out
}

// Stats returns a snapshot of the tracker state.
func (rt *RequestTracker) Stats() RequestStats {
	return RequestStats{
		Tracked:    rt.currentTime,
		Retained:   rt.size,
		NoResult:   rt.noResultCount,
		WindowSize: rt.window,
	}
}
