package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dmgolubev/svodkabot/internal/database"
)

// displayDateTimeLayout renders stored timestamps for humans.
const displayDateTimeLayout = "02.01.2006 15:04"

// formatStoredDate converts a stored timestamp into the given display
// layout. Unparseable values are shown verbatim rather than dropped.
func formatStoredDate(stored, layout string) string {
	t, err := time.Parse(database.TimestampLayout, stored)
	if err != nil {
		return stored
	}
	return t.Format(layout)
}

// NewGroupsHandler returns a handler for the /groups command.
func NewGroupsHandler(deps HandlerDeps) bot.HandlerFunc {
	return groupsHandler{deps}.Handle
}

type groupsHandler struct {
	deps HandlerDeps
}

func (h groupsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "groups")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Groups handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /groups command", "chat_id", chatID, "user_id", update.Message.From.ID)

	groups, err := h.deps.Store.ListGroups(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list groups", "error", err, "chat_id", chatID)
		return
	}

	if len(groups) == 0 {
		_, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   h.deps.Config.Messages.NoGroups,
		})
		if sendErr != nil {
			log.ErrorContext(ctx, "Failed to send no groups message", "error", sendErr, "chat_id", chatID)
		}
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 Отслеживаемые группы:\n\n")
	for _, g := range groups {
		lastMessage := "Нет сообщений"
		if g.LastMessage.Valid {
			lastMessage = formatStoredDate(g.LastMessage.String, displayDateTimeLayout)
		}

		sb.WriteString(fmt.Sprintf("📌 %s\n", g.GroupTitle))
		sb.WriteString(fmt.Sprintf("   ID: <code>%d</code>\n", g.GroupID))
		sb.WriteString(fmt.Sprintf("   Сообщений: %d\n", g.MessageCount))
		sb.WriteString(fmt.Sprintf("   Последнее: %s\n\n", lastMessage))
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      sb.String(),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send groups list", "error", err, "chat_id", chatID)
	}
}
