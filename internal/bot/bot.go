// Package bot implements Telegram bot setup, handler registration,
// and scheduled task management.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dmgolubev/svodkabot/internal/bot/handlers"
)

// NewTelegramBot creates the Telegram bot client with the given options.
func NewTelegramBot(token string, logger *slog.Logger, opts ...tgbot.Option) (*tgbot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := tgbot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully")
	return b, nil
}

// applyMiddleware wraps a handler function with a slice of middleware.
// Middleware are applied in reverse order so the first one in the slice is the outermost.
func applyMiddleware(handler tgbot.HandlerFunc, mw []tgbot.Middleware) tgbot.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}

// RegisterHandlers registers command and callback handlers with the
// Telegram bot instance, applying each handler's middleware.
func RegisterHandlers(b *tgbot.Bot, logger *slog.Logger, registeredHandlers map[string]handlers.RegisteredHandler) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "handler_registry")

	if len(registeredHandlers) == 0 {
		log.Warn("No handlers provided for registration.")
		return nil
	}

	for _, regHandler := range registeredHandlers {
		if regHandler.Handler == nil {
			log.Warn("Skipping registration for nil handler", "pattern", regHandler.Pattern)
			continue
		}

		finalHandler := applyMiddleware(regHandler.Handler, regHandler.Middleware)
		b.RegisterHandler(regHandler.HandlerType, regHandler.Pattern, regHandler.MatchType, finalHandler)
		log.Debug("Registered handler", "pattern", regHandler.Pattern, "match_type", regHandler.MatchType, "middleware_count", len(regHandler.Middleware))
	}

	log.Info("Registered Telegram handlers successfully", "count", len(registeredHandlers))
	return nil
}

// SetupCommands publishes the command menu shown by Telegram clients.
func SetupCommands(ctx context.Context, b *tgbot.Bot, logger *slog.Logger) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "Начало работы"},
		{Command: "help", Description: "Помощь"},
		{Command: "groups", Description: "Список отслеживаемых групп"},
		{Command: "stats", Description: "Статистика по группам"},
		{Command: "analyze", Description: "Запросить анализ"},
	}

	ok, err := b.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{Commands: commands})
	if err != nil {
		logger.Warn("Failed to set bot command menu", "error", err)
		return fmt.Errorf("failed to set bot commands: %w", err)
	}
	if !ok {
		logger.Warn("Telegram declined the bot command menu update")
		return fmt.Errorf("failed to set bot commands")
	}

	logger.Info("Bot command menu set", "count", len(commands))
	return nil
}
