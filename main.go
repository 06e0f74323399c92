package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"jobly/internal/app"
	"jobly/internal/config"
	"jobly/internal/logger"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	// 2. Infrastructure
	deps, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	// 3. Wire features
	application, err := app.New(cfg, deps.DB, deps.Publisher(), log)
	if err != nil {
		return err
	}

	// 4. Start Server
	return application.Run(ctx)
}
