package main

import (
	"context"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/household_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/household_ledger/internal/core/services"
	"github.com/SscSPs/household_ledger/internal/handlers"
	"github.com/SscSPs/household_ledger/internal/middleware"
	"github.com/SscSPs/household_ledger/internal/platform/config"
	"github.com/SscSPs/household_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/household_ledger/internal/repositories/sheets"
	"github.com/SscSPs/household_ledger/pkg/database"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	logger.Info("Running database migrations...", slog.String("source", cfg.MigrationsURL))
	applied, err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsURL, logger)
	if err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	// Left as a nil interface when sync is disabled so the sync service can
	// report it as not configured.
	var snapshotStore portsrepo.SnapshotStore
	if cfg.SheetsEnabled() {
		store, err := sheets.NewSnapshotStore(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsCredentialsJSON, cfg.SheetsRange, cfg.SheetsTimeout)
		if err != nil {
			logger.Error("Failed to initialize sheets snapshot store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		snapshotStore = store
		logger.Info("Google Sheets sync enabled", slog.String("range", cfg.SheetsRange))
	} else {
		logger.Info("Google Sheets sync disabled")
	}

	repos := pgsql.NewRepositoryProvider(dbPool, snapshotStore)
	serviceContainer := services.NewServiceContainer(repos)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
