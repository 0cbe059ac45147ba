package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/NetLive5/weblarek/internal/api"
	"github.com/NetLive5/weblarek/internal/config"
	"github.com/NetLive5/weblarek/internal/presenter"
	"github.com/NetLive5/weblarek/internal/session"
	"github.com/NetLive5/weblarek/internal/shopapi"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting Web-larek storefront",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("api_url", cfg.Shop.APIURL),
	)

	shop := shopapi.NewClient(cfg.Shop.APIURL, cfg.Shop.CDNURL, cfg.Shop.HTTPTimeout, logger)
	opts := presenter.Options{ClearSelectionOnSuccess: cfg.Session.ClearSelectionOnSuccess}

	// One storefront per client session
	store := session.NewStore(func(sched presenter.Scheduler) (*presenter.Presenter, error) {
		return presenter.Build(shop, sched, opts, logger)
	}, cfg.Session.TTL, logger)
	defer store.Close()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go store.RunSweeper(sweepCtx, time.Minute)

	router := api.NewRouter(cfg, store, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Shop.HTTPTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
