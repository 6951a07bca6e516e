package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStatsHandler returns a handler for the /stats command.
func NewStatsHandler(deps HandlerDeps) bot.HandlerFunc {
	return statsHandler{deps}.Handle
}

type statsHandler struct {
	deps HandlerDeps
}

func (h statsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "stats")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Stats handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /stats command", "chat_id", chatID, "user_id", update.Message.From.ID)

	groups, err := h.deps.Store.ListGroups(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list groups for statistics", "error", err, "chat_id", chatID)
		return
	}

	if len(groups) == 0 {
		_, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   h.deps.Config.Messages.NoStats,
		})
		if sendErr != nil {
			log.ErrorContext(ctx, "Failed to send no stats message", "error", sendErr, "chat_id", chatID)
		}
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 СТАТИСТИКА ПО ГРУППАМ\n\n")
	for _, g := range groups {
		stats, err := h.deps.Store.GetStatistics(ctx, g.GroupID, "", "")
		if err != nil {
			log.ErrorContext(ctx, "Failed to get statistics for group", "group_id", g.GroupID, "error", err)
			continue
		}

		sb.WriteString(fmt.Sprintf("📌 <b>%s</b>\n", g.GroupTitle))
		sb.WriteString(fmt.Sprintf("   Всего сообщений: %d\n", stats.TotalMessages))
		sb.WriteString(fmt.Sprintf("   Уникальных пользователей: %d\n", stats.UniqueUsers))

		if stats.FirstMessage.Valid {
			sb.WriteString(fmt.Sprintf("   Первое сообщение: %s\n", formatStoredDate(stats.FirstMessage.String, "02.01.2006")))
		}
		if stats.LastMessage.Valid {
			sb.WriteString(fmt.Sprintf("   Последнее: %s\n", formatStoredDate(stats.LastMessage.String, displayDateTimeLayout)))
		}
		sb.WriteString("\n")
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      sb.String(),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send statistics", "error", err, "chat_id", chatID)
	}
}
