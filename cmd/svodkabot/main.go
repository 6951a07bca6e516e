// Package main contains the entrypoint for the group analysis bot.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmgolubev/svodkabot/internal/app"
	"github.com/dmgolubev/svodkabot/internal/config"
	"github.com/dmgolubev/svodkabot/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all application components, blocks until shutdown,
// and returns the process exit code.
func run(ctx context.Context) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.Format == "json")
	log.Info("Logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil {
		log.Error("Application stopped with error", "error", err)
		return 1
	}

	return 0
}
