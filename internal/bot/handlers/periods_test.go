package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmgolubev/svodkabot/internal/database"
)

func TestResolvePeriodWindows(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		key       string
		label     string
		wantStart string
	}{
		{"1d", "последние 24 часа", database.FormatTimestamp(now.AddDate(0, 0, -1))},
		{"3d", "последние 3 дня", database.FormatTimestamp(now.AddDate(0, 0, -3))},
		{"7d", "последняя неделя", database.FormatTimestamp(now.AddDate(0, 0, -7))},
		{"30d", "последний месяц", database.FormatTimestamp(now.AddDate(0, 0, -30))},
		{"all", "весь период", ""},
	}

	for _, tc := range cases {
		label, start, end := ResolvePeriod(tc.key, now)
		assert.Equal(t, tc.label, label, "key %s", tc.key)
		assert.Equal(t, tc.wantStart, start, "key %s", tc.key)
		assert.Equal(t, database.FormatTimestamp(now), end, "key %s", tc.key)
	}
}

func TestResolvePeriodUnknownKeyFallsBackToFullHistory(t *testing.T) {
	t.Parallel()

	label, start, _ := ResolvePeriod("bogus", time.Now())
	assert.Equal(t, "весь период", label)
	assert.Empty(t, start)
}

func TestFormatStoredDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "15.06.2025 12:30", formatStoredDate("2025-06-15T12:30:00Z", displayDateTimeLayout))
	assert.Equal(t, "15.06.2025", formatStoredDate("2025-06-15T12:30:00Z", "02.01.2006"))
	// Garbage passes through unchanged.
	assert.Equal(t, "not-a-date", formatStoredDate("not-a-date", displayDateTimeLayout))
}
