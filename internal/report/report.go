// Package report renders AI-generated activity reports for logged groups.
// It builds the model prompt from stored messages and formats the model
// output into HTML suitable for Telegram.
package report

import (
	"fmt"
	"strings"

	"github.com/dmgolubev/svodkabot/internal/database"
	"github.com/dmgolubev/svodkabot/internal/gemini"
)

const (
	// MaxPromptMessages caps how many messages are included in the prompt.
	MaxPromptMessages = 200

	// ChunkSize is the maximum report chunk length in characters. Telegram
	// rejects messages longer than 4096; the chunks leave headroom for
	// markup added around them.
	ChunkSize = 4000

	// ErrorPrefix starts the reply text shown when report generation fails.
	ErrorPrefix = "❌ Ошибка при анализе: "
)

// markdownMarkers are stripped from model output in this exact order.
// The model is told not to use formatting symbols but does not always comply.
var markdownMarkers = []string{"**", "__", "##", "*"}

// keywords are phrases wrapped in <b> tags to highlight report structure.
var keywords = []string{
	"Отчёт за", "Что было:", "массовый сбой", "проблема", "жалобы",
	"обращения", "ошибка", "сбой", "не работает", "технические проблемы",
	"частые вопросы", "атмосфера", "работа в штатном режиме", "всё спокойно",
}

// FormatMessageLine renders one stored message as a prompt line.
func FormatMessageLine(m database.Message) string {
	return fmt.Sprintf("[%s] %s: %s", m.MessageDate, m.SenderName(), m.MessageText)
}

// BuildPrompt assembles the model prompt from the group title, period label,
// window statistics, and the message log. Only the first MaxPromptMessages
// messages are included; messages arrive newest first from storage.
func BuildPrompt(groupTitle, periodText string, stats database.GroupStats, messages []database.Message) string {
	capped := messages
	if len(capped) > MaxPromptMessages {
		capped = capped[:MaxPromptMessages]
	}

	lines := make([]string, 0, len(capped))
	for _, m := range capped {
		lines = append(lines, FormatMessageLine(m))
	}

	return fmt.Sprintf(gemini.ReportPromptTemplate,
		groupTitle, periodText,
		len(messages), stats.UniqueUsers,
		strings.Join(lines, "\n\n"),
		periodText,
	)
}

// StripMarkers removes markdown formatting symbols from the model output.
func StripMarkers(text string) string {
	for _, marker := range markdownMarkers {
		text = strings.ReplaceAll(text, marker, "")
	}
	return text
}

// Emphasize wraps known report keywords in <b> tags.
func Emphasize(text string) string {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			text = strings.ReplaceAll(text, keyword, "<b>"+keyword+"</b>")
		}
	}
	return text
}

// Header renders the HTML header block prepended to every report.
func Header(groupTitle, periodText string, totalMessages int, uniqueUsers int64) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>📊 ОТЧЁТ:</b> %s\n", groupTitle))
	sb.WriteString(fmt.Sprintf("<b>📅 Период:</b> %s\n", periodText))
	sb.WriteString(fmt.Sprintf("<b>📝 Сообщений:</b> %d | <b>👥 Участников:</b> %d\n", totalMessages, uniqueUsers))
	sb.WriteString(strings.Repeat("═", 40))
	sb.WriteString("\n\n")
	return sb.String()
}

// SplitChunks splits text into pieces of at most size characters.
// Splitting is by rune so multi-byte characters are never cut in half.
func SplitChunks(text string, size int) []string {
	if size <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
