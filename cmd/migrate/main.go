package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/surgearcade/portal/internal/config"
	"github.com/surgearcade/portal/internal/database"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of migrating up")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	if *down {
		if err := database.MigrateDown(cfg.GetDBConnString()); err != nil {
			slog.Error("Migration rollback failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Migration rolled back")
		return
	}

	if err := database.Migrate(cfg.GetDBConnString()); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Migrations applied")
}
