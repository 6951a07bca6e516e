package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewAnalyzeHandler returns a handler for the /analyze command.
// It starts the two-step dialog by offering a group selection keyboard.
func NewAnalyzeHandler(deps HandlerDeps) bot.HandlerFunc {
	return analyzeHandler{deps}.Handle
}

type analyzeHandler struct {
	deps HandlerDeps
}

func (h analyzeHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "analyze")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Analyze handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /analyze command", "chat_id", chatID, "user_id", update.Message.From.ID)

	groups, err := h.deps.Store.ListGroups(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list groups for analysis", "error", err, "chat_id", chatID)
		return
	}

	if len(groups) == 0 {
		_, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   h.deps.Config.Messages.NoGroupsAnalyze,
		})
		if sendErr != nil {
			log.ErrorContext(ctx, "Failed to send no groups message", "error", sendErr, "chat_id", chatID)
		}
		return
	}

	keyboard := make([][]models.InlineKeyboardButton, 0, len(groups))
	for _, g := range groups {
		keyboard = append(keyboard, []models.InlineKeyboardButton{{
			Text:         fmt.Sprintf("📌 %s (%d сообщ.)", g.GroupTitle, g.MessageCount),
			CallbackData: fmt.Sprintf("%s%d", SelectGroupPrefix, g.GroupID),
		}})
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        h.deps.Config.Messages.ChooseGroup,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: keyboard},
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send group selection keyboard", "error", err, "chat_id", chatID)
	}
}
