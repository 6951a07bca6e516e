package handlers

import (
	"context"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmgolubev/svodkabot/internal/database"
)

func periodCallbackUpdate(data string) *models.Update {
	return &models.Update{
		ID: 1,
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-1",
			From: models.User{ID: testAdminID},
			Data: data,
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{
					ID:   7,
					Date: 1700000000,
					Chat: models.Chat{ID: 500, Type: models.ChatTypePrivate},
				},
			},
		},
	}
}

func TestPeriodTapWithoutSelectionIsRejected(t *testing.T) {
	b, fake := newTestBot(t)
	store := new(mockStore)
	ai := new(mockAI)
	deps := newTestDeps(store, ai) // fresh SelectionStore: nothing selected

	NewPeriodCallbackHandler(deps)(context.Background(), b, periodCallbackUpdate(PeriodPrefix+"1d"))

	edits := fake.callsTo("editMessageText")
	require.Len(t, edits, 1, "exactly one edit: the stale-state error")
	assert.Contains(t, edits[0].body, "❌ Ошибка: группа не выбрана.")

	require.Len(t, fake.callsTo("answerCallbackQuery"), 1, "spinner is still cleared")
	assert.Empty(t, fake.callsTo("sendMessage"))
	assert.Empty(t, store.Calls, "no storage access without a selection")
	assert.Empty(t, ai.Calls, "no model invocation without a selection")
}

func TestPeriodTapWithEmptyWindowReportsNoMessages(t *testing.T) {
	b, fake := newTestBot(t)
	store := new(mockStore)
	ai := new(mockAI)
	deps := newTestDeps(store, ai)
	deps.Selection.Set(testAdminID, -100)

	store.On("GetStatistics", mock.Anything, int64(-100), mock.Anything, mock.Anything).
		Return(database.GroupStats{}, nil)

	NewPeriodCallbackHandler(deps)(context.Background(), b, periodCallbackUpdate(PeriodPrefix+"7d"))

	edits := fake.callsTo("editMessageText")
	require.Len(t, edits, 2, "progress edit then the empty-period edit")
	assert.Contains(t, edits[1].body, "📭 Нет сообщений за последняя неделя.")

	assert.Empty(t, ai.Calls, "empty window must not invoke the model")
	store.AssertNotCalled(t, "ListMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}
