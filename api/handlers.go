package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gcbaptista/search-server/internal/analytics"
	"github.com/gcbaptista/search-server/internal/engine"
	"github.com/gcbaptista/search-server/internal/metrics"
)

// API holds dependencies for API handlers.
//
// The engine and tracker are single-threaded; mu serializes writers
// (ingestion and tracked searches) against readers.
type API struct {
	mu       sync.RWMutex
	engine   *engine.Engine
	tracker  *analytics.RequestTracker
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   *zap.Logger
}

// Options configures NewAPI.
type Options struct {
	Metrics  *metrics.Metrics    // nil creates unregistered collectors
	Gatherer prometheus.Gatherer // nil disables GET /metrics
	Logger   *zap.Logger         // nil disables logging
}

// NewAPI creates a new API handler structure.
func NewAPI(eng *engine.Engine, tracker *analytics.RequestTracker, opts Options) *API {
	if opts.Metrics == nil {
		opts.Metrics = metrics.New(nil)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &API{
		engine:   eng,
		tracker:  tracker,
		metrics:  opts.Metrics,
		gatherer: opts.Gatherer,
		logger:   opts.Logger,
	}
}

// SetupRoutes defines all the API routes for the search server.
func SetupRoutes(router *gin.Engine, apiHandler *API) {
	router.Use(RequestIDMiddleware())

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/stats", apiHandler.GetStatsHandler)

	if apiHandler.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(apiHandler.gatherer, promhttp.HandlerOpts{})))
	}

	// Request history route
	router.GET("/history", apiHandler.GetHistoryHandler)

	// Document routes
	docRoutes := router.Group("/documents")
	{
		docRoutes.POST("", apiHandler.AddDocumentsHandler)           // Add one document or an array of documents
		docRoutes.GET("/count", apiHandler.GetDocumentCountHandler)  // Number of indexed documents
		docRoutes.GET("/at/:index", apiHandler.GetDocumentIDHandler) // Id of the n-th ingested document
	}

	// Query routes
	router.POST("/_search", apiHandler.SearchHandler)
	router.POST("/_match", apiHandler.MatchDocumentHandler)
	router.POST("/_match_all", apiHandler.MatchDocumentsHandler)
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "search-server",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// GetStatsHandler returns engine statistics and the effective settings.
func (api *API) GetStatsHandler(c *gin.Context) {
	api.mu.RLock()
	stats := api.engine.Stats()
	settings := api.engine.Settings()
	stopWords := api.engine.StopWords()
	api.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"stats":      stats,
		"settings":   settings,
		"stop_words": stopWords,
	})
}
