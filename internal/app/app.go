// Package app wires together the bot components and manages their lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/dmgolubev/svodkabot/internal/bot"
	"github.com/dmgolubev/svodkabot/internal/bot/handlers"
	"github.com/dmgolubev/svodkabot/internal/bot/tasks"
	"github.com/dmgolubev/svodkabot/internal/config"
	"github.com/dmgolubev/svodkabot/internal/database"
	"github.com/dmgolubev/svodkabot/internal/gemini"
	"github.com/dmgolubev/svodkabot/internal/httpserver"
	"github.com/dmgolubev/svodkabot/internal/logger"
	"github.com/dmgolubev/svodkabot/internal/report"
)

// shutdownTimeout bounds how long the HTTP server may take to drain.
const shutdownTimeout = 10 * time.Second

// App holds all initialized components of the bot application.
type App struct {
	logger     *slog.Logger
	cfg        *config.Config
	db         *sqlx.DB
	store      database.Store
	tgBot      *tgbot.Bot
	scheduler  *bot.Scheduler
	httpServer *httpserver.Server
}

// New initializes every component: storage, AI client, report service,
// Telegram bot with its handlers, scheduler, and the liveness HTTP server.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	store := database.NewStore(db, log)

	gemClient, err := gemini.NewClient(ctx, cfg.Gemini, log)
	if err != nil {
		database.CloseDB(db)
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	reports := report.NewService(store, gemClient, log)

	hDeps := handlers.HandlerDeps{
		Logger:    log,
		Config:    cfg,
		Store:     store,
		Reports:   reports,
		Selection: handlers.NewSelectionStore(),
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewIngestHandler(hDeps)),
	}
	tg, err := bot.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		database.CloseDB(db)
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	if err := bot.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
		database.CloseDB(db)
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		database.CloseDB(db)
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	srv := httpserver.New(cfg.HTTP.Port, len(cfg.AdminList()), log)

	return &App{
		logger:     log.With("component", "app"),
		cfg:        cfg,
		db:         db,
		store:      store,
		tgBot:      tg,
		scheduler:  sched,
		httpServer: srv,
	}, nil
}

// Run starts all components and blocks until the context is cancelled or
// one of them fails.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("Starting application...")

	if err := bot.SetupCommands(ctx, a.tgBot, a.logger); err != nil {
		// The command menu is cosmetic; the bot still works without it.
		a.logger.Warn("Continuing without command menu", "error", err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("Starting Telegram bot listener...")
		a.tgBot.Start(gCtx)
		a.logger.Info("Telegram bot listener stopped.")

		if gCtx.Err() == nil {
			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		if err := a.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		a.logger.Info("Shutdown signal received, stopping scheduler...")
		if err := a.scheduler.Stop(); err != nil {
			a.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		errCh := make(chan error, 1)
		go func() { errCh <- a.httpServer.ListenAndServe() }()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("http server failed: %w", err)
			}
			return nil
		case <-gCtx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("Error shutting down HTTP server", "error", err)
			}
			return nil
		}
	})

	a.logger.Info("Application running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("Application stopped due to error", "error", err)
		return err
	}

	a.logger.Info("Application stopped gracefully.")
	return nil
}

// Close releases resources held by the application.
func (a *App) Close() {
	database.CloseDB(a.db)
}
