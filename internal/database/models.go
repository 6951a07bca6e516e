package database

import (
	"database/sql"
)

// Group represents a chat group whose messages are being logged.
// A row is upserted on every observed message, which also resets the
// added_date and re-activates the group.
type Group struct {
	GroupID    int64  `db:"group_id"`
	GroupTitle string `db:"group_title"`
	AddedDate  string `db:"added_date"`
	Active     int64  `db:"active"`
}

// Message represents a single logged text message from a group.
// Rows are append-only; duplicate platform message IDs from retried
// deliveries are accepted as-is.
type Message struct {
	ID          uint           `db:"id"`
	MessageID   int64          `db:"message_id"`
	GroupID     int64          `db:"group_id"`
	UserID      int64          `db:"user_id"`
	Username    sql.NullString `db:"username"`
	FirstName   sql.NullString `db:"first_name"`
	MessageText string         `db:"message_text"`
	MessageDate string         `db:"message_date"`
}

// SenderName returns the display name used when rendering a message:
// the first name when present, otherwise the username.
func (m Message) SenderName() string {
	if m.FirstName.Valid && m.FirstName.String != "" {
		return m.FirstName.String
	}
	return m.Username.String
}

// GroupInfo is a ListGroups row: a group joined with its message count and
// latest message timestamp. LastMessage is NULL for groups with no messages.
type GroupInfo struct {
	GroupID      int64          `db:"group_id"`
	GroupTitle   string         `db:"group_title"`
	MessageCount int64          `db:"message_count"`
	LastMessage  sql.NullString `db:"last_message"`
}

// GroupStats holds aggregate statistics for a group over a date window.
type GroupStats struct {
	TotalMessages int64          `db:"total_messages"`
	UniqueUsers   int64          `db:"unique_users"`
	FirstMessage  sql.NullString `db:"first_message"`
	LastMessage   sql.NullString `db:"last_message"`
}
