package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// UpsertGroup inserts or replaces a group row. The title is overwritten,
	// the active flag is reset to 1 and added_date is set to "now" on every
	// call, even when the group already exists.
	UpsertGroup(ctx context.Context, groupID int64, title string) error

	// InsertMessage appends a new message row. No dedup on MessageID.
	InsertMessage(ctx context.Context, message *Message) error

	// GetGroupTitle returns the display title of a group.
	GetGroupTitle(ctx context.Context, groupID int64) (string, error)

	// ListGroups returns all active groups with their message counts and
	// latest message timestamps, newest activity first. Groups without
	// messages have a NULL last message and sort last.
	ListGroups(ctx context.Context) ([]GroupInfo, error)

	// ListMessages returns messages of a group ordered newest first.
	// startDate/endDate are inclusive bounds in TimestampLayout format;
	// an empty bound means unbounded on that side. limit <= 0 means no limit.
	ListMessages(ctx context.Context, groupID int64, startDate, endDate string, limit int) ([]Message, error)

	// GetStatistics returns aggregate statistics for a group over the same
	// inclusive date-bound semantics as ListMessages.
	GetStatistics(ctx context.Context, groupID int64, startDate, endDate string) (GroupStats, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// ErrGroupNotFound is returned by GetGroupTitle when no group row exists.
var ErrGroupNotFound = errors.New("group not found")

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) UpsertGroup(ctx context.Context, groupID int64, title string) error {
	if groupID == 0 {
		return fmt.Errorf("group_id cannot be zero")
	}

	query := `
        INSERT OR REPLACE INTO groups (group_id, group_title, added_date, active)
        VALUES (?, ?, ?, 1);
    `
	_, err := s.db.ExecContext(ctx, query, groupID, title, FormatTimestamp(time.Now()))
	if err != nil {
		s.logger.ErrorContext(ctx, "Error upserting group", "group_id", groupID, "error", err)
		return fmt.Errorf("failed to upsert group %d: %w", groupID, err)
	}

	s.logger.DebugContext(ctx, "Group upserted", "group_id", groupID, "title", title)
	return nil
}

func (s *sqlxStore) InsertMessage(ctx context.Context, message *Message) error {
	if message == nil {
		return fmt.Errorf("cannot save nil message")
	}
	if message.GroupID == 0 {
		return fmt.Errorf("message must have a non-zero group_id")
	}
	if message.MessageDate == "" {
		return fmt.Errorf("message must have a timestamp")
	}

	query := `
        INSERT INTO messages (message_id, group_id, user_id, username, first_name, message_text, message_date)
        VALUES (:message_id, :group_id, :user_id, :username, :first_name, :message_text, :message_date);
    `
	result, err := s.db.NamedExecContext(ctx, query, message)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving message", "group_id", message.GroupID, "user_id", message.UserID, "error", err)
		return fmt.Errorf("failed to save message (group %d, user %d): %w", message.GroupID, message.UserID, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		//nolint:gosec // integer overflow conversion is acceptable here
		message.ID = uint(id)
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after saving message",
			"group_id", message.GroupID, "user_id", message.UserID, "error", err)
	}

	s.logger.DebugContext(ctx, "Message saved", "group_id", message.GroupID, "user_id", message.UserID, "id", message.ID)
	return nil
}

func (s *sqlxStore) GetGroupTitle(ctx context.Context, groupID int64) (string, error) {
	var title string
	err := s.db.GetContext(ctx, &title, `SELECT group_title FROM groups WHERE group_id = ?`, groupID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("group %d: %w", groupID, ErrGroupNotFound)
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting group title", "group_id", groupID, "error", err)
		return "", fmt.Errorf("failed to get title for group %d: %w", groupID, err)
	}
	return title, nil
}

func (s *sqlxStore) ListGroups(ctx context.Context) ([]GroupInfo, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var groups []GroupInfo
	// Groups without messages carry a NULL last_message; SQLite's DESC
	// ordering places NULL rows last.
	query := `
        SELECT g.group_id, g.group_title, COUNT(m.id) AS message_count,
               MAX(m.message_date) AS last_message
        FROM groups g
        LEFT JOIN messages m ON g.group_id = m.group_id
        WHERE g.active = 1
        GROUP BY g.group_id, g.group_title
        ORDER BY last_message DESC;
    `
	if err := s.db.SelectContext(ctx, &groups, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing groups", "error", err)
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	s.logger.DebugContext(ctx, "Listed groups", "count", len(groups))
	return groups, nil
}

func (s *sqlxStore) ListMessages(ctx context.Context, groupID int64, startDate, endDate string, limit int) ([]Message, error) {
	if groupID == 0 {
		return nil, fmt.Errorf("group_id cannot be zero")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	query := `
        SELECT id, message_id, group_id, user_id, username, first_name, message_text, message_date
        FROM messages
        WHERE group_id = ?
    `
	args := []any{groupID}

	if startDate != "" {
		query += ` AND message_date >= ?`
		args = append(args, startDate)
	}
	if endDate != "" {
		query += ` AND message_date <= ?`
		args = append(args, endDate)
	}

	query += ` ORDER BY message_date DESC`

	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var messages []Message
	if err := s.db.SelectContext(ctx, &messages, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Error getting messages",
			"group_id", groupID, "start_date", startDate, "end_date", endDate, "error", err)
		return nil, fmt.Errorf("failed to get messages for group %d: %w", groupID, err)
	}

	s.logger.DebugContext(ctx, "Fetched messages", "group_id", groupID, "count", len(messages))
	return messages, nil
}

func (s *sqlxStore) GetStatistics(ctx context.Context, groupID int64, startDate, endDate string) (GroupStats, error) {
	var stats GroupStats
	if groupID == 0 {
		return stats, fmt.Errorf("group_id cannot be zero")
	}
	if ctx.Err() != nil {
		return stats, ctx.Err()
	}

	query := `
        SELECT COUNT(*) AS total_messages,
               COUNT(DISTINCT user_id) AS unique_users,
               MIN(message_date) AS first_message,
               MAX(message_date) AS last_message
        FROM messages
        WHERE group_id = ?
    `
	args := []any{groupID}

	if startDate != "" {
		query += ` AND message_date >= ?`
		args = append(args, startDate)
	}
	if endDate != "" {
		query += ` AND message_date <= ?`
		args = append(args, endDate)
	}

	if err := s.db.GetContext(ctx, &stats, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Error getting statistics", "group_id", groupID, "error", err)
		return stats, fmt.Errorf("failed to get statistics for group %d: %w", groupID, err)
	}

	return stats, nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite.
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)
	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	return nil
}
