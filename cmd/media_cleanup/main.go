package main

import (
	"context"
	"flag"
	"time"

	"shesafe/internal/config"
	"shesafe/internal/database"
	"shesafe/internal/pkg/logger"
	"shesafe/internal/repository"
	"shesafe/internal/storage"
)

func main() {
	grace := flag.Duration("grace", 24*time.Hour, "keep unreferenced blobs written more recently than this")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", "error", err)
	}
	logger.Init(cfg.AppEnv)

	if *grace <= 0 {
		logger.Fatal("grace must be > 0", "grace", *grace)
	}

	db, err := database.Connect(cfg.DatabaseURL, database.Options{Debug: cfg.DBDebug})
	if err != nil {
		logger.Fatal("database connect failed", "error", err)
	}

	store, err := storage.NewDiskStore(cfg.UploadDir, cfg.MediaURLBase, cfg.MaxUploadBytes)
	if err != nil {
		logger.Fatal("media store init failed", "error", err)
	}

	ctx := context.Background()
	urls, err := repository.NewVendorRepository(db).MediaURLs(ctx)
	if err != nil {
		logger.Fatal("list media urls failed", "error", err)
	}

	removed, err := store.Sweep(ctx, urls, time.Now().Add(-*grace))
	if err != nil {
		logger.Fatal("media sweep failed", "removed", removed, "error", err)
	}
	logger.Info("media cleanup completed", "referenced", len(urls), "removed", removed)
}
