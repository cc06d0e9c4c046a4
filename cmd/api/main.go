package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nexusnova/atlas/internal/api"
	"github.com/nexusnova/atlas/internal/api/handlers"
	"github.com/nexusnova/atlas/internal/ingest"
	"github.com/nexusnova/atlas/internal/models"
	"github.com/nexusnova/atlas/internal/overview"
	"github.com/nexusnova/atlas/internal/registry"
	"github.com/nexusnova/atlas/internal/session"
	"github.com/nexusnova/atlas/internal/traces"
	"github.com/nexusnova/atlas/pkg/config"
	"github.com/nexusnova/atlas/pkg/logger"
)

// @title           Atlas Engine API
// @version         1.0
// @description     Service-dependency graph and trace dashboard backend

// @host      localhost:8080
// @BasePath  /api/v1

const defaultFeatureSet = "BILLING_CORE"

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting Atlas Engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	// Committed graphs: the default map seeded from the service-graph file
	// when configured, plus two blank maps mirroring the shipped catalogue.
	reg := registry.New()
	seed := models.NewGraph()
	if cfg.SeedPath != "" {
		seed, err = ingest.LoadServiceGraph(cfg.SeedPath)
		if err != nil {
			log.Fatal("Failed to load service graph seed", zap.Error(err))
		}
		log.Info("Service graph seed loaded",
			zap.Int("nodes", seed.NodeCount()),
			zap.Int("edges", seed.EdgeCount()),
		)
	}
	reg.Set(defaultFeatureSet, seed)
	reg.Set("USAGE_RATING", models.NewGraph())
	reg.Set("DEVICE_MGMT", models.NewGraph())

	// Overview catalogue
	cat := overview.Catalogue{}
	if cfg.FeatureSetsPath != "" {
		cat, err = overview.LoadCatalogue(cfg.FeatureSetsPath)
		if err != nil {
			log.Fatal("Failed to load feature set catalogue", zap.Error(err))
		}
	}
	overviewSvc := overview.NewService(cat)

	// Trace catalogue
	traceCat := traces.NewCatalog(nil)
	if cfg.TracesPath != "" {
		traceCat, err = traces.Load(cfg.TracesPath)
		if err != nil {
			log.Fatal("Failed to load traces", zap.Error(err))
		}
	}

	// Edit session over the registry
	sess := session.New(reg, defaultFeatureSet, cfg.SyncLatency)

	// Create router with dependencies
	router := api.NewRouter(api.Dependencies{
		FeatureSetsHandler: handlers.NewFeatureSetsHandler(reg, sess),
		SessionHandler:     handlers.NewSessionHandler(sess),
		OverviewHandler:    handlers.NewOverviewHandler(overviewSvc),
		TracesHandler:      handlers.NewTracesHandler(traceCat),
		EventsHandler:      handlers.NewEventsHandler(sess),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
