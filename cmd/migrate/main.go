package main

import (
	"fmt"
	"os"

	"github.com/confguard/confguard/internal/config"
	"github.com/confguard/confguard/internal/pkg/logger"
	"github.com/confguard/confguard/internal/repository/store"
	"github.com/confguard/confguard/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := store.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	migrationFS, err := migrations.For(cfg.Database.Driver)
	if err != nil {
		log.Fatalf("Failed to load migrations: %v", err)
	}
	if err := store.RunMigrations(db, migrationFS); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Info("Migrations applied")
}
