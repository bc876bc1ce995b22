package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gcbaptista/search-server/internal/paginate"
	"github.com/gcbaptista/search-server/model"
)

// SearchResponse is the body returned by POST /_search.
type SearchResponse struct {
	Hits             []model.Document `json:"hits"`
	Total            int              `json:"total"`
	QueryID          string           `json:"query_id"`
	Took             int64            `json:"took"` // milliseconds
	NoResultRequests int              `json:"no_result_requests"`
}

// MatchAllResponse is one page of POST /_match_all.
type MatchAllResponse struct {
	Matches    []model.MatchResult `json:"matches"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

// SearchHandler runs a tracked top-documents search.
func (api *API) SearchHandler(c *gin.Context) {
	startTime := time.Now()

	var req SearchRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateSearchRequest(req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	api.mu.Lock()
	hits, err := api.tracker.AddFindRequest(req.Query, BuildPredicate(req))
	noResult := api.tracker.NoResultCount()
	api.metrics.ObserveSearch(len(hits), err, noResult)
	api.mu.Unlock()

	if err != nil {
		SendEngineError(c, "search", ErrorCodeInvalidQuery, err)
		return
	}

	queryID := uuid.New().String()
	api.logger.Debug("search",
		zap.String("query_id", queryID),
		zap.String("query", req.Query),
		zap.Int("hits", len(hits)))

	c.JSON(http.StatusOK, SearchResponse{
		Hits:             hits,
		Total:            len(hits),
		QueryID:          queryID,
		Took:             time.Since(startTime).Milliseconds(),
		NoResultRequests: noResult,
	})
}

// MatchDocumentHandler reports which plus-words of a query a document contains.
func (api *API) MatchDocumentHandler(c *gin.Context) {
	var req MatchRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateMatchRequest(req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	api.mu.RLock()
	match, err := api.engine.MatchDocument(req.Query, *req.DocumentID)
	api.mu.RUnlock()
	if err != nil {
		SendEngineError(c, "match document", ErrorCodeInvalidQuery, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// MatchDocumentsHandler matches a query against every document and returns one page.
func (api *API) MatchDocumentsHandler(c *gin.Context) {
	var req MatchAllRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	page, pageSize, result := ValidatePagination(req.Page, req.PageSize)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	api.mu.RLock()
	matches, err := api.engine.MatchDocuments(req.Query)
	api.mu.RUnlock()
	if err != nil {
		SendEngineError(c, "match documents", ErrorCodeInvalidQuery, err)
		return
	}

	pages := paginate.New(matches, pageSize)
	current, ok := pages.Page(page - 1)
	if !ok {
		current = []model.MatchResult{}
	}

	c.JSON(http.StatusOK, MatchAllResponse{
		Matches:    current,
		Total:      len(matches),
		Page:       page,
		PageSize:   pages.PageSize(),
		TotalPages: pages.Len(),
	})
}

// GetHistoryHandler returns request history statistics.
func (api *API) GetHistoryHandler(c *gin.Context) {
	api.mu.RLock()
	stats := api.tracker.Stats()
	api.mu.RUnlock()

	c.JSON(http.StatusOK, stats)
}
