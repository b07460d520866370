package main

import (
	"context"
	"flag"

	"golang.org/x/crypto/bcrypt"

	"shesafe/internal/config"
	"shesafe/internal/database"
	"shesafe/internal/pkg/logger"
	"shesafe/internal/seed"
)

func main() {
	email := flag.String("email", "admin@admin.com", "admin account email")
	password := flag.String("password", "admin123", "new password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", "error", err)
	}
	logger.Init(cfg.AppEnv)

	if cfg.IsProduction() && *password == "admin123" {
		logger.Fatal("refusing to set the default admin password in production")
	}

	db, err := database.Connect(cfg.DatabaseURL, database.Options{Debug: cfg.DBDebug})
	if err != nil {
		logger.Fatal("database connect failed", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("database migrate failed", "error", err)
	}

	created, err := seed.ResetAdmin(context.Background(), db, *email, *password, bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("reset admin failed", "email", *email, "error", err)
	}
	logger.Info("admin password reset", "email", *email, "created", created)
}
