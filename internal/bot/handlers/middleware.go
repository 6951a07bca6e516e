// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AdminOnly creates a middleware that checks the sender against the
// configured administrator allow-list. Unauthorized command senders get a
// denial reply; unauthorized callback taps are acknowledged and dropped.
// Nothing is read from or written to storage for denied updates.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			log := deps.Logger.With("middleware", "AdminOnly")

			if update.CallbackQuery != nil {
				userID := update.CallbackQuery.From.ID
				if !deps.Config.IsAdmin(userID) {
					log.WarnContext(ctx, "Unauthorized callback attempt", "user_id", userID, "data", update.CallbackQuery.Data)
					_, err := bot.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
						CallbackQueryID: update.CallbackQuery.ID,
						Text:            deps.Config.Messages.NotAuthorized,
					})
					if err != nil {
						log.ErrorContext(ctx, "Failed to answer unauthorized callback", "error", err)
					}
					return
				}
				next(ctx, bot, update)
				return
			}

			if update.Message == nil || update.Message.From == nil {
				next(ctx, bot, update)
				return
			}

			userID := update.Message.From.ID
			if !deps.Config.IsAdmin(userID) {
				chatID := update.Message.Chat.ID
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID, "chat_id", chatID)

				_, err := bot.SendMessage(ctx, &tgbot.SendMessageParams{
					ChatID: chatID,
					Text:   deps.Config.Messages.NotAuthorized,
				})
				if err != nil {
					log.ErrorContext(ctx, "Failed to send unauthorized message", "error", err, "chat_id", chatID)
				}
				return
			}

			next(ctx, bot, update)
		}
	}
}
