package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmgolubev/svodkabot/internal/config"
	"github.com/dmgolubev/svodkabot/internal/database"
	"github.com/dmgolubev/svodkabot/internal/report"
)

const testAdminID int64 = 42

// apiCall is one request captured by the fake Bot API server.
type apiCall struct {
	method string
	body   string
}

// fakeTelegram records Bot API requests and replies with success payloads,
// so handlers can run against a real *bot.Bot instance.
type fakeTelegram struct {
	mu    sync.Mutex
	calls []apiCall
}

func (f *fakeTelegram) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

		f.mu.Lock()
		f.calls = append(f.calls, apiCall{method: method, body: string(body)})
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if method == "answerCallbackQuery" {
			fmt.Fprint(w, `{"ok":true,"result":true}`)
			return
		}
		fmt.Fprint(w, `{"ok":true,"result":{}}`)
	}
}

func (f *fakeTelegram) callsTo(method string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []apiCall
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

// newTestBot spins up a fake Bot API server and a bot client pointed at it.
func newTestBot(t *testing.T) (*bot.Bot, *fakeTelegram) {
	t.Helper()

	fake := &fakeTelegram{}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	b, err := bot.New("12345:test-token", bot.WithServerURL(srv.URL), bot.WithSkipGetMe())
	require.NoError(t, err)
	return b, fake
}

// newTestDeps builds handler dependencies with a single allow-listed admin
// and the default user-facing texts the handlers reply with.
func newTestDeps(store *mockStore, ai *mockAI) HandlerDeps {
	cfg := config.Config{
		Messages: config.MessagesConfig{
			NotAuthorized:    "❌ У вас нет доступа.",
			NoGroups:         "📭 Пока нет отслеживаемых групп.",
			NoStats:          "📭 Нет данных для статистики.",
			NoGroupsAnalyze:  "📭 Нет групп для анализа.",
			ChooseGroup:      "Выберите группу для анализа:",
			ChoosePeriod:     "Выберите период для анализа:",
			Collecting:       "⏳ Собираю данные и анализирую... Это может занять минуту.",
			GroupNotSelected: "❌ Ошибка: группа не выбрана.",
			NoMessagesPeriod: "📭 Нет сообщений за %s.",
		},
	}.WithAdminList([]int64{testAdminID})

	return HandlerDeps{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:    cfg,
		Store:     store,
		Reports:   report.NewService(store, ai, nil),
		Selection: NewSelectionStore(),
	}
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) UpsertGroup(ctx context.Context, groupID int64, title string) error {
	return m.Called(ctx, groupID, title).Error(0)
}

func (m *mockStore) InsertMessage(ctx context.Context, message *database.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *mockStore) GetGroupTitle(ctx context.Context, groupID int64) (string, error) {
	args := m.Called(ctx, groupID)
	return args.String(0), args.Error(1)
}

func (m *mockStore) ListGroups(ctx context.Context) ([]database.GroupInfo, error) {
	args := m.Called(ctx)
	groups, _ := args.Get(0).([]database.GroupInfo)
	return groups, args.Error(1)
}

func (m *mockStore) ListMessages(ctx context.Context, groupID int64, startDate, endDate string, limit int) ([]database.Message, error) {
	args := m.Called(ctx, groupID, startDate, endDate, limit)
	messages, _ := args.Get(0).([]database.Message)
	return messages, args.Error(1)
}

func (m *mockStore) GetStatistics(ctx context.Context, groupID int64, startDate, endDate string) (database.GroupStats, error) {
	args := m.Called(ctx, groupID, startDate, endDate)
	stats, _ := args.Get(0).(database.GroupStats)
	return stats, args.Error(1)
}

func (m *mockStore) RunSQLMaintenance(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockAI struct {
	mock.Mock
}

func (m *mockAI) GenerateReport(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
