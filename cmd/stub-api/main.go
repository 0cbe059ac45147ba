package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/internal/stubapi"
)

// stub-api serves a local copy of the shop API for development:
// the catalog, item details and order placement under /api/weblarek.
func main() {
	// Load shared .env from repo root (works when run from cmd/stub-api or the root)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	port := strings.TrimSpace(os.Getenv("STUB_PORT"))
	if port == "" {
		port = "3000"
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	var items []domain.Item
	if path := strings.TrimSpace(os.Getenv("CATALOG_FILE")); path != "" {
		items, err = stubapi.LoadCatalog(path)
	} else {
		items, err = stubapi.DefaultCatalog()
	}
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	if os.Getenv("ENVIRONMENT") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      stubapi.NewServer(items, logger).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start stub API", zap.Error(err))
		}
	}()

	logger.Info("Stub shop API listening",
		zap.String("address", srv.Addr),
		zap.String("base_path", stubapi.BasePath),
		zap.Int("items", len(items)),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Stub API forced to shutdown", zap.Error(err))
	}
}
