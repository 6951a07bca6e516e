package handlers

import (
	"time"

	"github.com/dmgolubev/svodkabot/internal/database"
)

// Callback data prefixes for the two-step analysis dialog.
const (
	SelectGroupPrefix = "select_group_"
	PeriodPrefix      = "period_"
)

// periodOption is one row of the period selection keyboard.
type periodOption struct {
	Key   string
	Label string
}

// periodOptions defines the keyboard rows in display order.
var periodOptions = []periodOption{
	{Key: "1d", Label: "📅 Последние 24 часа"},
	{Key: "3d", Label: "📅 Последние 3 дня"},
	{Key: "7d", Label: "📅 Последняя неделя"},
	{Key: "30d", Label: "📅 Последний месяц"},
	{Key: "all", Label: "📅 Весь период"},
}

// ResolvePeriod maps a period key to its human-readable label and an
// inclusive date window ending at now. An empty startDate means unbounded.
// Unknown keys fall back to the full history, matching the "all" option.
func ResolvePeriod(key string, now time.Time) (periodText, startDate, endDate string) {
	endDate = database.FormatTimestamp(now)

	switch key {
	case "1d":
		return "последние 24 часа", database.FormatTimestamp(now.AddDate(0, 0, -1)), endDate
	case "3d":
		return "последние 3 дня", database.FormatTimestamp(now.AddDate(0, 0, -3)), endDate
	case "7d":
		return "последняя неделя", database.FormatTimestamp(now.AddDate(0, 0, -7)), endDate
	case "30d":
		return "последний месяц", database.FormatTimestamp(now.AddDate(0, 0, -30)), endDate
	default:
		return "весь период", "", endDate
	}
}
