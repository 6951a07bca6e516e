package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmgolubev/svodkabot/internal/database"
	"github.com/dmgolubev/svodkabot/internal/gemini"
)

// Service produces formatted activity reports for a group and period.
type Service struct {
	store database.Store
	ai    gemini.Client
	log   *slog.Logger
}

// NewService creates a report service over the given store and AI client.
func NewService(store database.Store, ai gemini.Client, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		store: store,
		ai:    ai,
		log:   log.With("component", "report_service"),
	}
}

// BuildReport generates the full HTML report text for a group over an
// inclusive date window. periodText is the human-readable period label.
//
// Storage failures are returned as errors. A model failure is not: the
// returned text then carries ErrorPrefix and the failure description, so
// the requester always gets a reply.
func (s *Service) BuildReport(ctx context.Context, groupID int64, periodText, startDate, endDate string) (string, error) {
	groupTitle, err := s.store.GetGroupTitle(ctx, groupID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve group title: %w", err)
	}

	messages, err := s.store.ListMessages(ctx, groupID, startDate, endDate, 0)
	if err != nil {
		return "", fmt.Errorf("failed to load messages: %w", err)
	}

	stats, err := s.store.GetStatistics(ctx, groupID, startDate, endDate)
	if err != nil {
		return "", fmt.Errorf("failed to load statistics: %w", err)
	}

	prompt := BuildPrompt(groupTitle, periodText, stats, messages)

	s.log.InfoContext(ctx, "Requesting report generation",
		"group_id", groupID, "period", periodText, "message_count", len(messages))

	text, err := s.ai.GenerateReport(ctx, prompt)
	if err != nil {
		s.log.ErrorContext(ctx, "Report generation failed", "group_id", groupID, "error", err)
		return ErrorPrefix + err.Error(), nil
	}

	header := Header(groupTitle, periodText, len(messages), stats.UniqueUsers)
	return header + Emphasize(StripMarkers(text)), nil
}
