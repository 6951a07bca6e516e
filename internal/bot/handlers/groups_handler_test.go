package handlers

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmgolubev/svodkabot/internal/database"
)

func TestGroupsListLabelsGroupWithoutMessages(t *testing.T) {
	b, fake := newTestBot(t)
	store := new(mockStore)
	deps := newTestDeps(store, new(mockAI))

	store.On("ListGroups", mock.Anything).Return([]database.GroupInfo{
		{
			GroupID:      -200,
			GroupTitle:   "Курьеры Центр",
			MessageCount: 3,
			LastMessage:  sql.NullString{String: "2025-06-15T12:30:00Z", Valid: true},
		},
		{
			GroupID:      -100,
			GroupTitle:   "Тихая группа",
			MessageCount: 0,
		},
	}, nil)

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
	NewGroupsHandler(deps)(context.Background(), b, update)

	sends := fake.callsTo("sendMessage")
	require.Len(t, sends, 1)
	assert.Contains(t, sends[0].body, "Тихая группа")
	assert.Contains(t, sends[0].body, "Нет сообщений")
	assert.Contains(t, sends[0].body, "15.06.2025 12:30")
	store.AssertExpectations(t)
}
