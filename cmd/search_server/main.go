package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/search-server/api"
	"github.com/gcbaptista/search-server/config"
	"github.com/gcbaptista/search-server/internal/analytics"
	"github.com/gcbaptista/search-server/internal/engine"
	"github.com/gcbaptista/search-server/internal/logger"
	"github.com/gcbaptista/search-server/internal/metrics"
)

const version = "1.0.0"

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		showVer    = flag.Bool("version", false, "Show version information")
		port       = flag.Int("port", 0, "Port to run the server on (overrides config)")
		configPath = flag.String("config", "", "Path to a YAML config file")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Search Server - TF-IDF document search with request history\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                     # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                         # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --config configs/search_server.yaml # Load stop words and seed documents\n", os.Args[0])
		return
	}

	// Handle version flag
	if *showVer {
		fmt.Printf("Search Server v%s\n", version)
		return
	}

	cfg := config.DefaultServerConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	log, err := logger.NewLogger(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("search server stopped")
}

func run(ctx context.Context, cfg config.ServerConfig, log *zap.Logger) error {
	searchEngine, err := engine.NewFromWords(cfg.StopWords, cfg.Engine, log)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	for _, doc := range cfg.Documents {
		err := searchEngine.AddDocument(doc.ID, doc.Text, doc.Status, doc.Ratings)
		m.ObserveIngest(err, searchEngine.GetDocumentCount())
		if err != nil {
			return fmt.Errorf("seed document %d: %w", doc.ID, err)
		}
	}
	log.Info("engine ready",
		zap.Int("documents", searchEngine.GetDocumentCount()),
		zap.Int("stop_words", len(cfg.StopWords)))

	tracker, err := analytics.NewRequestTracker(searchEngine, cfg.History, log)
	if err != nil {
		return fmt.Errorf("create request tracker: %w", err)
	}

	if cfg.Logging.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.LoggerMiddleware(log), api.CORSMiddleware(), api.RequestSizeLimitMiddleware(cfg.HTTP.MaxBodyBytes))
	api.SetupRoutes(router, api.NewAPI(searchEngine, tracker, api.Options{
		Metrics:  m,
		Gatherer: reg,
		Logger:   log,
	}))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("search server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
