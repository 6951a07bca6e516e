package logger

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short string untouched",
			input:  "привет",
			maxLen: 50,
			want:   "привет",
		},
		{
			name:   "long ascii truncated",
			input:  strings.Repeat("a", 60),
			maxLen: 50,
			want:   strings.Repeat("a", 47) + "...",
		},
		{
			name:   "long cyrillic truncated on rune boundary",
			input:  strings.Repeat("ё", 60),
			maxLen: 50,
			want:   strings.Repeat("ё", 47) + "...",
		},
		{
			name:   "tiny limit",
			input:  "сообщение",
			maxLen: 3,
			want:   "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := truncateString(tt.input, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got), "truncation must not split a codepoint")
			assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.maxLen)
		})
	}
}
