package main

import (
	"context"
	stdlog "log"
	"net/http"
	"time"

	"github.com/username/subveris/backend/src/analytics"
	"github.com/username/subveris/backend/src/config"
	"github.com/username/subveris/backend/src/handlers"
	"github.com/username/subveris/backend/src/logger"
	"github.com/username/subveris/backend/src/services"
	"github.com/username/subveris/backend/src/storage"
)

// buildStore constructs the storage backend selected by configuration.
// The chosen store is passed explicitly into the engine and handlers;
// there is no package-level storage singleton.
func buildStore(ctx context.Context, cfg *config.AppConfig) (storage.Store, func() error, error) {
	switch cfg.StorageBackend {
	case "sqlite":
		db, err := storage.OpenDB(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		if err := storage.RunMigrations(db, cfg.DatabasePath); err != nil {
			db.Close()
			return nil, nil, err
		}
		store := storage.NewSQLiteStore(db)
		if err := store.EnsureDefaultUser(ctx, cfg.DefaultUsername); err != nil {
			db.Close()
			return nil, nil, err
		}
		if cfg.SeedDemoData {
			if err := store.SeedIfEmpty(ctx); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		logger.L.Info("Initialized sqlite storage backend", "path", cfg.DatabasePath)
		return store, db.Close, nil
	default:
		store := storage.NewMemoryStore(cfg.DefaultUsername)
		if cfg.SeedDemoData {
			store.Seed()
		}
		logger.L.Info("Initialized in-memory storage backend", "seeded", cfg.SeedDemoData)
		return store, nil, nil
	}
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Subveris backend server starting...")

	ctx := context.Background()
	store, cleanup, err := buildStore(ctx, config.Cfg)
	if err != nil {
		stdlog.Fatalf("Failed to initialize storage: %v", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	engine := analytics.NewEngine(store)
	mfaService := services.NewMFAService(config.Cfg.TOTPIssuer)

	router := handlers.NewRouter(
		handlers.RouterConfig{
			FrontendBaseURL:   config.Cfg.FrontendBaseURL,
			RateLimitInterval: config.Cfg.RateLimitInterval,
			RateLimitBurst:    config.Cfg.RateLimitBurst,
		},
		handlers.NewSubscriptionHandler(store),
		handlers.NewAnalyticsHandler(engine),
		handlers.NewInsightHandler(store),
		handlers.NewBankHandler(store),
		handlers.NewAccountHandler(store, mfaService),
	)

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
