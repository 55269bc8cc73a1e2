package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"futsal-reserve/internal/infra/repository"
	"futsal-reserve/internal/pkg/config"
)

func main() {
	command := flag.String("command", "up", "goose command (up, down, status)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := repository.RunMigrations(context.Background(), cfg.DB.BuildDSN(), *command); err != nil {
		slog.Error("migration failed", "command", *command, "error", err)
		os.Exit(1)
	}

	slog.Info("migration applied", "command", *command)
}
