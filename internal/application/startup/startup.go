// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hearsaylabs/revuloop-go/internal/application/container"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/caching/cleanup"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/email"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/logging"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/performance"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/persistence/database"
	"github.com/hearsaylabs/revuloop-go/internal/presentation/http/server"
	"github.com/hearsaylabs/revuloop-go/pkg/config"
	"github.com/joho/godotenv"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	// Step 1: Load environment and configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found -- config defaults will be used")
	}
	config.Initialize()

	// Step 2: Create the channeled logger
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger.Startup().Info("Logger initialized - switching to channeled logging")

	// Step 3: Connect to the reviews database
	logger.Startup().Info("Connecting to database...")
	driverName, dsn := database.ResolveDriver(config.DatabaseURL)
	db, err := database.NewConnectionWithLogger(driverName, dsn, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database (%s): %w", driverName, err)
	}

	// Step 4: Bootstrap the schema (idempotent)
	logger.Startup().Info("Ensuring database schema...")
	tableCreator := database.NewTableCreator()
	if err := tableCreator.CreateSchema(db.DB); err != nil {
		return fmt.Errorf("failed to create database schema: %w", err)
	}

	// Step 5: Initialize performance tracking
	perfTracker := performance.NewTracker(performance.DefaultTrackerConfig())

	// Step 6: Configure review notifications (optional)
	notifier, err := email.NewService(os.Getenv("RESEND_API_KEY"))
	if err != nil {
		return fmt.Errorf("failed to create email service: %w", err)
	}
	if notifier != nil {
		logger.Startup().Info("Review notification emails enabled", "to", config.ReviewNotifyTo)
	}

	// Step 7: Create dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer := container.NewContainer(db, notifier, logger, perfTracker)
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 8: Start background session cleanup worker
	logger.Startup().Info("Starting background session cleanup worker...")
	cleanupConfig := cleanup.NewConfig()
	cleanupWorker := cleanup.NewWorker(appContainer.SessionStore, cleanupConfig, logger)
	go cleanupWorker.Start(ctx)

	// Step 9: Start HTTP server
	logger.Startup().Info("Starting HTTP server...")
	httpServer := server.New(config.Port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+config.Port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	totalStartupTime := time.Since(start)
	logger.Startup().Info("Application startup complete",
		"totalDuration", totalStartupTime,
		"driver", driverName,
		"port", config.Port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	// Cancel background tasks
	cancelBackgroundTasks()

	// Stop server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	// Close database
	logger.Shutdown().Info("Closing database connection...")
	if err := db.Close(); err != nil {
		logger.Shutdown().Error("Error closing database", "error", err.Error())
	} else {
		logger.Shutdown().Info("Database connection closed successfully")
	}

	elapsed := time.Since(start)
	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", elapsed,
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
