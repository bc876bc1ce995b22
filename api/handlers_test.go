package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/search-server/config"
	"github.com/gcbaptista/search-server/internal/analytics"
	"github.com/gcbaptista/search-server/internal/engine"
	"github.com/gcbaptista/search-server/internal/metrics"
	testutil "github.com/gcbaptista/search-server/internal/testing"
)

func setupTestRouter(t *testing.T, eng *engine.Engine) (*gin.Engine, *API) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tracker, err := analytics.NewRequestTracker(eng, config.HistorySettings{WindowSize: 10}, nil)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	apiHandler := NewAPI(eng, tracker, Options{
		Metrics:  metrics.New(reg),
		Gatherer: reg,
	})

	router := gin.New()
	SetupRoutes(router, apiHandler)
	return router, apiHandler
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthCheckHandler(t *testing.T) {
	router, _ := setupTestRouter(t, testutil.CreateTestEngine(t))

	w := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]interface{}](t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestAddDocumentsHandler(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedCode   ErrorCode
	}{
		{
			name:           "single document",
			requestBody:    map[string]interface{}{"id": 1, "text": "white cat", "status": "ACTUAL", "ratings": []int{1, 2}},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "numeric status",
			requestBody:    map[string]interface{}{"id": 2, "text": "white cat", "status": 2},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid JSON",
			requestBody:    "{not json",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeInvalidJSON,
		},
		{
			name:           "missing id",
			requestBody:    map[string]interface{}{"text": "white cat"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeValidationFailed,
		},
		{
			name:           "negative id",
			requestBody:    map[string]interface{}{"id": -1, "text": "white cat"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeValidationFailed,
		},
		{
			name:           "control character in text",
			requestBody:    map[string]interface{}{"id": 3, "text": "white\x01cat"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeInvalidDocument,
		},
		{
			name:           "unknown status",
			requestBody:    map[string]interface{}{"id": 4, "text": "white cat", "status": "DELETED"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupTestRouter(t, testutil.CreateTestEngine(t))

			w := doJSON(t, router, http.MethodPost, "/documents", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedCode != "" {
				apiErr := decode[APIError](t, w)
				assert.Equal(t, tt.expectedCode, apiErr.Code)
				assert.NotEmpty(t, apiErr.RequestID)
			}
		})
	}
}

func TestAddDocumentsHandler_Duplicate(t *testing.T) {
	eng := testutil.CreateTestEngine(t)
	router, _ := setupTestRouter(t, eng)

	doc := map[string]interface{}{"id": 7, "text": "white cat"}
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/documents", doc).Code)

	w := doJSON(t, router, http.MethodPost, "/documents", doc)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, eng.GetDocumentCount())
}

func TestAddDocumentsHandler_Batch(t *testing.T) {
	eng := testutil.CreateTestEngine(t)
	router, _ := setupTestRouter(t, eng)

	batch := []map[string]interface{}{
		{"id": 0, "text": "white cat", "ratings": []int{1}},
		{"id": 0, "text": "duplicate"},
		{"id": 1, "text": "fluffy dog"},
	}
	w := doJSON(t, router, http.MethodPost, "/documents", batch)

	assert.Equal(t, http.StatusMultiStatus, w.Code)
	body := decode[struct {
		Added    int               `json:"added"`
		Failures []DocumentFailure `json:"failures"`
	}](t, w)
	assert.Equal(t, 2, body.Added)
	require.Len(t, body.Failures, 1)
	assert.Equal(t, 1, body.Failures[0].Position)
	assert.Equal(t, 2, eng.GetDocumentCount())

	t.Run("all rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/documents", batch[:2])
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty array", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/documents", "[]")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDocumentLookupHandlers(t *testing.T) {
	router, _ := setupTestRouter(t, testutil.CreatePetEngine(t))

	w := doJSON(t, router, http.MethodGet, "/documents/count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, decode[map[string]int](t, w)["document_count"])

	w = doJSON(t, router, http.MethodGet, "/documents/at/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[map[string]int](t, w)["document_id"])

	w = doJSON(t, router, http.MethodGet, "/documents/at/4", nil)
	assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, w.Code)
	assert.Equal(t, ErrorCodeOutOfRange, decode[APIError](t, w).Code)

	w = doJSON(t, router, http.MethodGet, "/documents/at/-1", nil)
	assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, w.Code)

	w = doJSON(t, router, http.MethodGet, "/documents/at/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchHandler(t *testing.T) {
	router, _ := setupTestRouter(t, testutil.CreatePetEngine(t))

	t.Run("default status", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/_search", SearchRequest{Query: "fluffy groomed cat"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[SearchResponse](t, w)
		assert.Equal(t, []int{1, 0, 2}, testutil.DocumentIDs(resp.Hits))
		assert.Equal(t, 3, resp.Total)
		assert.InDelta(t, 0.866434, resp.Hits[0].Relevance, 1e-6)
		assert.Len(t, resp.QueryID, 36)
	})

	t.Run("explicit status", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/_search", `{"query": "fluffy groomed cat", "status": "BANNED"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []int{3}, testutil.DocumentIDs(decode[SearchResponse](t, w).Hits))
	})

	t.Run("even ids", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/_search", SearchRequest{Query: "fluffy groomed cat", IDsParity: parityEven})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []int{0, 2}, testutil.DocumentIDs(decode[SearchResponse](t, w).Hits))
	})

	t.Run("min rating", func(t *testing.T) {
		minRating := 2
		w := doJSON(t, router, http.MethodPost, "/_search", SearchRequest{Query: "fluffy groomed cat", MinRating: &minRating})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []int{1, 0}, testutil.DocumentIDs(decode[SearchResponse](t, w).Hits))
	})

	t.Run("invalid query", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/_search", SearchRequest{Query: "cat --fluffy"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrorCodeInvalidQuery, decode[APIError](t, w).Code)
	})

	t.Run("invalid parity", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/_search", SearchRequest{Query: "cat", IDsParity: "prime"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrorCodeValidationFailed, decode[APIError](t, w).Code)
	})
}

func TestSearchHandler_TracksHistory(t *testing.T) {
	router, apiHandler := setupTestRouter(t, testutil.CreatePetEngine(t))

	queries := []string{"parrot", "fluffy", "starling", "cat -cat"}
	var last SearchResponse
	for _, q := range queries {
		w := doJSON(t, router, http.MethodPost, "/_search", SearchRequest{Query: q})
		require.Equal(t, http.StatusOK, w.Code)
		last = decode[SearchResponse](t, w)
	}
	// starling only matches a banned document.
	assert.Equal(t, 3, last.NoResultRequests)

	// Failed searches are not recorded.
	w := doJSON(t, router, http.MethodPost, "/_search", SearchRequest{Query: "-"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[analytics.RequestStats](t, w)
	assert.Equal(t, uint64(4), stats.Tracked)
	assert.Equal(t, 4, stats.Retained)
	assert.Equal(t, 3, stats.NoResult)
	assert.Equal(t, 10, stats.WindowSize)
	assert.Equal(t, 3, apiHandler.tracker.NoResultCount())
}

func TestMatchDocumentHandler(t *testing.T) {
	router, _ := setupTestRouter(t, testutil.CreatePetEngine(t))

	w := doJSON(t, router, http.MethodPost, "/_match", map[string]interface{}{"query": "fluffy cat tail collar", "document_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]interface{}](t, w)
	assert.Equal(t, []interface{}{"cat", "fluffy", "tail"}, body["words"])
	assert.Equal(t, "ACTUAL", body["status"])

	w = doJSON(t, router, http.MethodPost, "/_match", map[string]interface{}{"query": "cat", "document_id": 42})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrorCodeDocumentNotFound, decode[APIError](t, w).Code)

	w = doJSON(t, router, http.MethodPost, "/_match", map[string]interface{}{"query": "cat"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchDocumentsHandler(t *testing.T) {
	router, _ := setupTestRouter(t, testutil.CreatePetEngine(t))

	w := doJSON(t, router, http.MethodPost, "/_match_all", MatchAllRequest{Query: "cat groomed", PageSize: 3})
	require.Equal(t, http.StatusOK, w.Code)
	first := decode[MatchAllResponse](t, w)
	assert.Equal(t, 4, first.Total)
	assert.Equal(t, 2, first.TotalPages)
	require.Len(t, first.Matches, 3)
	assert.Equal(t, 0, first.Matches[0].DocumentID)

	w = doJSON(t, router, http.MethodPost, "/_match_all", MatchAllRequest{Query: "cat groomed", Page: 2, PageSize: 3})
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[MatchAllResponse](t, w)
	require.Len(t, second.Matches, 1)
	assert.Equal(t, 3, second.Matches[0].DocumentID)

	w = doJSON(t, router, http.MethodPost, "/_match_all", MatchAllRequest{Query: "cat", Page: 5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[MatchAllResponse](t, w).Matches)

	w = doJSON(t, router, http.MethodPost, "/_match_all", MatchAllRequest{Query: "cat", Page: -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t, testutil.CreatePetEngine(t))

	doJSON(t, router, http.MethodPost, "/_search", SearchRequest{Query: "parrot"})
	doJSON(t, router, http.MethodPost, "/documents", map[string]interface{}{"id": 9, "text": "new parrot"})

	w := doJSON(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `search_server_search_requests_total{outcome="no_result"} 1`), body)
	assert.True(t, strings.Contains(body, "search_server_documents_indexed_total 1"), body)
}

func TestStatsHandler(t *testing.T) {
	router, _ := setupTestRouter(t, testutil.CreatePetEngine(t))

	w := doJSON(t, router, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Stats     engine.Stats `json:"stats"`
		StopWords []string     `json:"stop_words"`
	}](t, w)
	assert.Equal(t, 4, body.Stats.DocumentCount)
	assert.Equal(t, []string{"and", "in", "on"}, body.StopWords)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDMiddleware_PropagatesHeader(t *testing.T) {
	router, _ := setupTestRouter(t, testutil.CreateTestEngine(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}
