// Package config provides configuration loading, validation, and management
// for the bot. Values come from defaults, config.yaml, and BOT_* environment
// variables, in that order of precedence.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the application configuration parameters.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Database  DatabaseConfig  `mapstructure:"database"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`

	adminList []int64
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// TelegramConfig holds the bot credential and the administrator allow-list.
// AdminIDs is a comma-separated list of Telegram user IDs.
type TelegramConfig struct {
	Token    string `mapstructure:"token"     validate:"required"`
	AdminIDs string `mapstructure:"admin_ids" validate:"required"`
}

// GeminiConfig holds the generative model credential and tuning parameters.
type GeminiConfig struct {
	APIKey            string  `mapstructure:"api_key"             validate:"required"`
	Model             string  `mapstructure:"model"               validate:"required"`
	Temperature       float32 `mapstructure:"temperature"         validate:"min=0,max=2"`
	MaxRetries        int     `mapstructure:"max_retries"         validate:"min=0,max=10"`
	RetryDelaySeconds int     `mapstructure:"retry_delay_seconds" validate:"min=0,max=60"`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// HTTPConfig holds the liveness server settings.
type HTTPConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// SchedulerConfig holds scheduled task settings keyed by task name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a named scheduled task with a cron expression.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// MessagesConfig holds all user-facing reply texts. Defaults match the
// bot's original Russian texts and can be overridden via config.
type MessagesConfig struct {
	NotAuthorized    string `mapstructure:"not_authorized"     validate:"required"`
	Welcome          string `mapstructure:"welcome"            validate:"required"`
	Help             string `mapstructure:"help"               validate:"required"`
	NoGroups         string `mapstructure:"no_groups"          validate:"required"`
	NoStats          string `mapstructure:"no_stats"           validate:"required"`
	NoGroupsAnalyze  string `mapstructure:"no_groups_analyze"  validate:"required"`
	ChooseGroup      string `mapstructure:"choose_group"       validate:"required"`
	ChoosePeriod     string `mapstructure:"choose_period"      validate:"required"`
	Collecting       string `mapstructure:"collecting"         validate:"required"`
	GroupNotSelected string `mapstructure:"group_not_selected" validate:"required"`
	NoMessagesPeriod string `mapstructure:"no_messages_period" validate:"required"`
}

// Load reads configuration from config.yaml and BOT_* environment variables,
// applies defaults, validates the result, and parses the admin allow-list.
func Load() (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("BOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay, we'll use defaults and env.
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	adminList, err := ParseAdminIDs(cfg.Telegram.AdminIDs)
	if err != nil {
		return nil, err
	}
	if len(adminList) == 0 {
		return nil, fmt.Errorf("telegram.admin_ids must contain at least one user ID")
	}
	cfg.adminList = adminList

	return cfg, nil
}

// ParseAdminIDs parses a comma-separated list of Telegram user IDs.
// Empty items are skipped.
func ParseAdminIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin ID %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// AdminList returns the parsed administrator allow-list.
func (c *Config) AdminList() []int64 {
	return c.adminList
}

// IsAdmin reports whether userID is a member of the static allow-list.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.adminList {
		if id == userID {
			return true
		}
	}
	return false
}

// WithAdminList returns a copy of the config with the given allow-list.
// Intended for tests that construct a Config directly.
func (c Config) WithAdminList(ids []int64) *Config {
	c.adminList = ids
	return &c
}

func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")

	// Registered empty so AutomaticEnv can bind BOT_TELEGRAM_TOKEN etc.
	// without a config file; validation rejects them when still empty.
	viper.SetDefault("telegram.token", "")
	viper.SetDefault("telegram.admin_ids", "")
	viper.SetDefault("gemini.api_key", "")

	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("gemini.temperature", 0.7)
	viper.SetDefault("gemini.max_retries", 2)
	viper.SetDefault("gemini.retry_delay_seconds", 2)

	viper.SetDefault("database.path", "messages.db")
	viper.SetDefault("http.port", 5000)

	viper.SetDefault("messages.not_authorized", "❌ У вас нет доступа.")
	viper.SetDefault("messages.welcome", `👋 Добро пожаловать в бот анализа групп!

👤 Ваш ID: <code>%d</code>

📋 Доступные команды:
/groups - Список отслеживаемых групп
/analyze - Запросить анализ
/stats - Статистика по группам
/help - Помощь

🤖 Просто добавьте меня в группу, и я начну записывать сообщения.
Я НЕ буду отправлять сообщения в группу, только слушаю!`)
	viper.SetDefault("messages.help", `📚 Руководство по использованию:

1️⃣ Добавьте бота в группу с курьерами
2️⃣ Дайте боту права на чтение сообщений
3️⃣ Бот автоматически начнет сохранять сообщения

📊 Анализ:
/analyze - Выбрать группу и период для анализа

📈 Статистика:
/stats - Посмотреть статистику по всем группам

📋 Группы:
/groups - Список всех отслеживаемых групп

⚠️ Примечание:
Бот НЕ отправляет сообщения в группы!
Он только читает и анализирует.`)
	viper.SetDefault("messages.no_groups", "📭 Пока нет отслеживаемых групп.\n\nДобавьте бота в группу для начала работы.")
	viper.SetDefault("messages.no_stats", "📭 Нет данных для статистики.")
	viper.SetDefault("messages.no_groups_analyze", "📭 Нет групп для анализа.")
	viper.SetDefault("messages.choose_group", "Выберите группу для анализа:")
	viper.SetDefault("messages.choose_period", "Выберите период для анализа:")
	viper.SetDefault("messages.collecting", "⏳ Собираю данные и анализирую... Это может занять минуту.")
	viper.SetDefault("messages.group_not_selected", "❌ Ошибка: группа не выбрана.")
	viper.SetDefault("messages.no_messages_period", "📭 Нет сообщений за %s.")
}
