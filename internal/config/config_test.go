package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("BOT_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("BOT_TELEGRAM_ADMIN_IDS", "111, 222,333")
	t.Setenv("BOT_GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, []int64{111, 222, 333}, cfg.AdminList())
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "messages.db", cfg.Database.Path)
	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "❌ У вас нет доступа.", cfg.Messages.NotAuthorized)
}

func TestLoadRequiresToken(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("BOT_TELEGRAM_ADMIN_IDS", "111")
	t.Setenv("BOT_GEMINI_API_KEY", "test-key")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadRequiresAdmins(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("BOT_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("BOT_TELEGRAM_ADMIN_IDS", " , ")
	t.Setenv("BOT_GEMINI_API_KEY", "test-key")

	_, err := Load()
	require.Error(t, err)
}

func TestParseAdminIDs(t *testing.T) {
	t.Parallel()

	ids, err := ParseAdminIDs("1,2, 3 ,,")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	_, err = ParseAdminIDs("1,abc")
	require.Error(t, err)
}

func TestIsAdmin(t *testing.T) {
	t.Parallel()

	cfg := Config{}.WithAdminList([]int64{42, 77})

	assert.True(t, cfg.IsAdmin(42))
	assert.True(t, cfg.IsAdmin(77))
	assert.False(t, cfg.IsAdmin(100))
}
