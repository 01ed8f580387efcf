package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itemlab/itemlab/internal/config"
	"github.com/itemlab/itemlab/internal/db"
	"github.com/itemlab/itemlab/internal/events"
	"github.com/itemlab/itemlab/internal/httpapi"
	"github.com/itemlab/itemlab/internal/repo"
	"github.com/itemlab/itemlab/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log := logger.NewLogger(cfg.ServiceName, cfg.LogLevel)
	defer log.Sync()

	log.Info("API service starting")

	// Connect to database
	log.Info("Connecting to database...",
		zap.String("driver", cfg.DBDriver),
		zap.String("dsn", cfg.DBDSN),
	)
	database, err := db.Connect(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Run migrations
	log.Info("Running database migrations...")
	if err := db.RunMigrations(database); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repository
	itemRepo := repo.NewItemRepository(database, log)

	// Event publishing is optional; the service runs standalone without it
	var publisher httpapi.EventPublisher
	if cfg.RabbitMQURL != "" {
		log.Info("Connecting to RabbitMQ")
		p, err := events.NewPublisher(cfg.RabbitMQURL, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, item events disabled", zap.Error(err))
		} else {
			defer p.Close()
			publisher = p
		}
	}

	// Build HTTP server
	api := httpapi.NewServer(database, itemRepo, publisher, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      api.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to serve HTTP", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped")
}
