package main

import (
	"context"
	"flag"
	"os"

	"golang.org/x/crypto/bcrypt"

	"shesafe/internal/config"
	"shesafe/internal/database"
	"shesafe/internal/pkg/logger"
	"shesafe/internal/seed"
)

func main() {
	fixturePath := flag.String("fixture", "", "YAML fixture to load instead of the built-in demo data")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", "error", err)
	}
	logger.Init(cfg.AppEnv)

	db, err := database.Connect(cfg.DatabaseURL, database.Options{Debug: cfg.DBDebug})
	if err != nil {
		logger.Fatal("database connect failed", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("database migrate failed", "error", err)
	}

	var fixture *seed.Fixture
	if *fixturePath != "" {
		data, err := os.ReadFile(*fixturePath)
		if err != nil {
			logger.Fatal("read fixture failed", "path", *fixturePath, "error", err)
		}
		fixture, err = seed.Parse(data)
		if err != nil {
			logger.Fatal("invalid fixture", "path", *fixturePath, "error", err)
		}
	} else if fixture, err = seed.Default(); err != nil {
		logger.Fatal("invalid built-in fixture", "error", err)
	}

	res, err := seed.Run(context.Background(), db, fixture, bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("seed failed", "error", err)
	}
	logger.Info("seed completed", "users_created", res.UsersCreated, "vendors_created", res.VendorsCreated, "admin", fixture.Admin.Email)
}
