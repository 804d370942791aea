// Command seed creates the bootstrap admin account when none exists.
package main

import (
	"context"
	"log"
	"os"

	"moviebase/internal/app"
	"moviebase/internal/config"
	"moviebase/internal/util"
	"moviebase/pkg/store"
	"moviebase/pkg/token"
)

func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := util.InitLogger(cfg.LogLevel)

	if cfg.SeedAdmin.Email == "" || cfg.SeedAdmin.Password == "" {
		log.Fatal("seed_admin email and password must be configured")
	}

	st, err := store.NewGormStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	application, err := app.New(app.Config{
		Store:  st,
		Tokens: token.NewIssuer(cfg.JWTSecret),
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("build app: %v", err)
	}

	created, err := application.EnsureAdmin(context.Background(), cfg.SeedAdmin.Name, cfg.SeedAdmin.Email, cfg.SeedAdmin.Password)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if created {
		logger.Info("admin account created", "email", cfg.SeedAdmin.Email)
	} else {
		logger.Info("admin account already present")
	}
}
