// Package tasks implements scheduled maintenance tasks for the bot.
package tasks

import (
	"log/slog"

	"github.com/dmgolubev/svodkabot/internal/config"
	"github.com/dmgolubev/svodkabot/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
}
