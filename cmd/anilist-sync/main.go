package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"takosu/database"
	"takosu/internal/config"
	"takosu/internal/ingestion/anilist"
)

// anilist-sync fills the anime catalog from AniList, then refreshes it every
// ANILIST_SYNC_INTERVAL (0 runs a single import).
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	logger := cfg.NewLogger(os.Stdout).With("service", "anilist-sync")

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	syncService := anilist.NewSyncService(
		anilist.NewClient(cfg.AniListURL, logger),
		anilist.NewGormStore(db),
		anilist.SyncConfig{
			Limit:       cfg.AniListSyncCount,
			WorkerCount: cfg.AniListSyncWorkers,
			PageDelay:   time.Second,
		},
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := syncService.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("initial sync cancelled")
			return
		}
		logger.Error("initial sync failed", "error", err)
	}

	if cfg.AniListSyncInterval <= 0 {
		return
	}
	logger.Info("anilist sync scheduled", "every", cfg.AniListSyncInterval)
	syncService.Schedule(ctx, cfg.AniListSyncInterval)
	logger.Info("anilist sync stopped")
}
