package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AquaBuilt/aqua-built-backend/config"
	"github.com/AquaBuilt/aqua-built-backend/handlers"
	"github.com/AquaBuilt/aqua-built-backend/logger"
	"github.com/AquaBuilt/aqua-built-backend/pkg/prodbx"
	"github.com/AquaBuilt/aqua-built-backend/router"
	"github.com/AquaBuilt/aqua-built-backend/services"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ProDBX client for fetching hosted contract/addendum pages
	prodbxClient := prodbx.NewClient(cfg.Prodbx)

	// Worker pool bounds parallel addendum fetches
	workerPool := services.NewWorkerPool(cfg.WorkerPool)
	workerPool.Start()

	// Services
	emailService := services.NewEmailService(&cfg.Email)
	ingestService := services.NewIngestService(nil, prodbxClient, workerPool, emailService, cfg.Prodbx.MaxParallelFetches)
	healthService := services.NewHealthService(workerPool, cfg.Server.Version)

	// Router setup
	r := router.SetupRouter(router.Dependencies{
		Config:          cfg,
		ContractHandler: handlers.NewContractHandler(ingestService),
		AddendumHandler: handlers.NewAddendumHandler(ingestService),
		BillingHandler:  handlers.NewBillingHandler(),
		HealthHandler:   handlers.NewHealthHandler(healthService),
		Logger:          log,
	})

	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Fatalf("Failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Block until a termination signal arrives, then drain
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.WorkerPool.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown failed", "error", err)
	}
	if err := workerPool.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Worker pool shutdown incomplete", "error", err)
	}

	log.Info("Server stopped")
}
