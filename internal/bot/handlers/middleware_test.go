package handlers

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminOnlyDeniesCommandsWithoutStorageAccess(t *testing.T) {
	b, fake := newTestBot(t)
	store := new(mockStore)
	deps := newTestDeps(store, new(mockAI))

	commands := map[string]bot.HandlerFunc{
		"/start":   NewStartHandler(deps),
		"/groups":  NewGroupsHandler(deps),
		"/stats":   NewStatsHandler(deps),
		"/analyze": NewAnalyzeHandler(deps),
	}

	updateID := int64(1)
	for command, handler := range commands {
		update := &models.Update{
			ID: updateID,
			Message: &models.Message{
				ID:   int(updateID),
				Date: 1700000000,
				Chat: models.Chat{ID: 500, Type: models.ChatTypePrivate},
				From: &models.User{ID: 999}, // not on the allow-list
				Text: command,
			},
		}
		updateID++

		AdminOnly(deps)(handler)(context.Background(), b, update)
	}

	sends := fake.callsTo("sendMessage")
	require.Len(t, sends, len(commands), "each denied command gets exactly one reply")
	for _, call := range sends {
		assert.Contains(t, call.body, "❌ У вас нет доступа.")
	}

	assert.Empty(t, store.Calls, "denied commands must not touch storage")
}

func TestAdminOnlyDropsUnauthorizedCallback(t *testing.T) {
	b, fake := newTestBot(t)
	store := new(mockStore)
	deps := newTestDeps(store, new(mockAI))

	handlerInvoked := false
	wrapped := AdminOnly(deps)(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		handlerInvoked = true
	})

	update := &models.Update{
		ID: 1,
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-1",
			From: models.User{ID: 999},
			Data: SelectGroupPrefix + "-100",
		},
	}
	wrapped(context.Background(), b, update)

	assert.False(t, handlerInvoked, "unauthorized callback must not reach the handler")

	answers := fake.callsTo("answerCallbackQuery")
	require.Len(t, answers, 1)
	assert.Contains(t, answers[0].body, "❌ У вас нет доступа.")
	assert.Empty(t, fake.callsTo("sendMessage"))
	assert.Empty(t, store.Calls)
}

func TestAdminOnlyPassesAllowListedSender(t *testing.T) {
	b, _ := newTestBot(t)
	deps := newTestDeps(new(mockStore), new(mockAI))

	handlerInvoked := false
	wrapped := AdminOnly(deps)(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		handlerInvoked = true
	})

	update := &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   1,
			Date: 1700000000,
			Chat: models.Chat{ID: 500, Type: models.ChatTypePrivate},
			From: &models.User{ID: testAdminID},
			Text: "/groups",
		},
	}
	wrapped(context.Background(), b, update)

	assert.True(t, handlerInvoked)
}
