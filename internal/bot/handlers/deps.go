package handlers

import (
	"log/slog"

	"github.com/dmgolubev/svodkabot/internal/config"
	"github.com/dmgolubev/svodkabot/internal/database"
	"github.com/dmgolubev/svodkabot/internal/report"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Store     database.Store
	Reports   *report.Service
	Selection *SelectionStore
}
