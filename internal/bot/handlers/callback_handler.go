package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dmgolubev/svodkabot/internal/report"
)

// answerCallback acknowledges a callback query so the client stops showing
// the loading spinner.
func answerCallback(ctx context.Context, b *bot.Bot, query *models.CallbackQuery) {
	_, _ = b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: query.ID,
	})
}

// callbackMessage extracts the chat and message the callback keyboard is
// attached to. Returns false when the message is inaccessible, in which
// case it cannot be edited.
func callbackMessage(query *models.CallbackQuery) (chatID int64, messageID int, ok bool) {
	if query.Message.Message != nil && query.Message.Message.Date != 0 {
		return query.Message.Message.Chat.ID, query.Message.Message.ID, true
	}
	return 0, 0, false
}

// NewSelectGroupCallbackHandler returns the handler for group selection
// taps. It records the choice and swaps the keyboard for period options.
func NewSelectGroupCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return selectGroupCallbackHandler{deps}.Handle
}

type selectGroupCallbackHandler struct {
	deps HandlerDeps
}

func (h selectGroupCallbackHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "callback_select_group")

	if update.CallbackQuery == nil {
		return
	}
	query := update.CallbackQuery
	answerCallback(ctx, b, query)

	groupID, err := strconv.ParseInt(strings.TrimPrefix(query.Data, SelectGroupPrefix), 10, 64)
	if err != nil {
		log.WarnContext(ctx, "Malformed group selection callback data", "data", query.Data, "error", err)
		return
	}

	chatID, messageID, ok := callbackMessage(query)
	if !ok {
		log.WarnContext(ctx, "Group selection callback on inaccessible message", "user_id", query.From.ID)
		return
	}

	h.deps.Selection.Set(query.From.ID, groupID)
	log.InfoContext(ctx, "Group selected for analysis", "user_id", query.From.ID, "group_id", groupID)

	keyboard := make([][]models.InlineKeyboardButton, 0, len(periodOptions))
	for _, opt := range periodOptions {
		keyboard = append(keyboard, []models.InlineKeyboardButton{{
			Text:         opt.Label,
			CallbackData: PeriodPrefix + opt.Key,
		}})
	}

	_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        h.deps.Config.Messages.ChoosePeriod,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: keyboard},
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to show period keyboard", "error", err, "chat_id", chatID)
	}
}

// NewPeriodCallbackHandler returns the handler for period selection taps.
// It resolves the date window, generates the report, and delivers it in
// chunks that fit Telegram's message size limit.
func NewPeriodCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return periodCallbackHandler{deps}.Handle
}

type periodCallbackHandler struct {
	deps HandlerDeps
}

func (h periodCallbackHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "callback_period")

	if update.CallbackQuery == nil {
		return
	}
	query := update.CallbackQuery
	answerCallback(ctx, b, query)

	chatID, messageID, ok := callbackMessage(query)
	if !ok {
		log.WarnContext(ctx, "Period callback on inaccessible message", "user_id", query.From.ID)
		return
	}

	editText := func(text string, parseMode models.ParseMode) error {
		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: messageID,
			Text:      text,
			ParseMode: parseMode,
		})
		return err
	}

	groupID, selected := h.deps.Selection.Get(query.From.ID)
	if !selected {
		log.WarnContext(ctx, "Period tapped without group selection", "user_id", query.From.ID)
		if err := editText(h.deps.Config.Messages.GroupNotSelected, ""); err != nil {
			log.ErrorContext(ctx, "Failed to send no selection message", "error", err, "chat_id", chatID)
		}
		return
	}

	if err := editText(h.deps.Config.Messages.Collecting, ""); err != nil {
		log.ErrorContext(ctx, "Failed to send progress message", "error", err, "chat_id", chatID)
	}

	periodKey := strings.TrimPrefix(query.Data, PeriodPrefix)
	periodText, startDate, endDate := ResolvePeriod(periodKey, time.Now())

	log.InfoContext(ctx, "Generating analysis report",
		"user_id", query.From.ID, "group_id", groupID, "period", periodKey)

	stats, err := h.deps.Store.GetStatistics(ctx, groupID, startDate, endDate)
	if err != nil {
		log.ErrorContext(ctx, "Failed to check message count", "group_id", groupID, "error", err)
		_ = editText(report.ErrorPrefix+err.Error(), "")
		return
	}
	if stats.TotalMessages == 0 {
		if err := editText(fmt.Sprintf(h.deps.Config.Messages.NoMessagesPeriod, periodText), ""); err != nil {
			log.ErrorContext(ctx, "Failed to send empty period message", "error", err, "chat_id", chatID)
		}
		return
	}

	text, err := h.deps.Reports.BuildReport(ctx, groupID, periodText, startDate, endDate)
	if err != nil {
		log.ErrorContext(ctx, "Report generation failed", "group_id", groupID, "error", err)
		_ = editText(report.ErrorPrefix+err.Error(), "")
		return
	}

	chunks := report.SplitChunks(text, report.ChunkSize)
	if err := editText(chunks[0], models.ParseModeHTML); err != nil {
		log.ErrorContext(ctx, "Failed to deliver report", "error", err, "chat_id", chatID)
		return
	}
	for _, chunk := range chunks[1:] {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      chunk,
			ParseMode: models.ParseModeHTML,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to deliver report chunk", "error", err, "chat_id", chatID)
			return
		}
	}

	log.InfoContext(ctx, "Report delivered", "group_id", groupID, "chunks", len(chunks))
}
