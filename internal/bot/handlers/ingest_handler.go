package handlers

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dmgolubev/svodkabot/internal/database"
)

// NewIngestHandler returns the default handler that silently logs group
// messages. The bot never replies in groups; it only listens.
func NewIngestHandler(deps HandlerDeps) bot.HandlerFunc {
	return ingestHandler{deps}.Handle
}

type ingestHandler struct {
	deps HandlerDeps
}

func (h ingestHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "ingest")

	if update.Message == nil {
		return
	}
	message := update.Message

	if message.Chat.Type != models.ChatTypeGroup && message.Chat.Type != models.ChatTypeSupergroup {
		return
	}

	// The group row is refreshed on every observed update so title changes
	// propagate, even for non-text messages.
	if err := h.deps.Store.UpsertGroup(ctx, message.Chat.ID, message.Chat.Title); err != nil {
		log.ErrorContext(ctx, "Failed to upsert group", "group_id", message.Chat.ID, "error", err)
		return
	}

	if message.Text == "" || strings.HasPrefix(message.Text, "/") {
		return
	}
	if message.From == nil {
		return
	}

	record := &database.Message{
		MessageID:   int64(message.ID),
		GroupID:     message.Chat.ID,
		UserID:      message.From.ID,
		Username:    nullIfEmpty(message.From.Username),
		FirstName:   nullIfEmpty(message.From.FirstName),
		MessageText: message.Text,
		MessageDate: database.FormatTimestamp(time.Unix(int64(message.Date), 0)),
	}

	if err := h.deps.Store.InsertMessage(ctx, record); err != nil {
		log.ErrorContext(ctx, "Failed to save group message",
			"group_id", message.Chat.ID, "user_id", message.From.ID, "error", err)
		return
	}

	log.DebugContext(ctx, "Group message saved",
		"group_id", message.Chat.ID, "user_id", message.From.ID, "message_id", message.ID)
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
