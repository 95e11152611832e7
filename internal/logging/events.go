// Package logging writes the per-frame decision trail to the frame_events
// table, giving each counted rep and rejected frame a queryable record.
package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region types

// Event types recorded per frame.
const (
	EventRep           = "rep"
	EventInvalidForm   = "invalid_form"
	EventLowConfidence = "low_confidence"
	EventOK            = "ok"
)

// FrameEvent is one row of the decision trail.
type FrameEvent struct {
	SessionID  string
	FrameIndex int
	EventType  string
	Issue      string
	Severity   string
	DetailJSON string
	CreatedAt  time.Time
}

// #endregion types

// #region log-event
// LogEvent writes a frame event to the frame_events table.
func LogEvent(db *sql.DB, event FrameEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO frame_events (session_id, frame_index, event_type, issue, severity, detail_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.SessionID,
		event.FrameIndex,
		event.EventType,
		nullIfEmpty(event.Issue),
		nullIfEmpty(event.Severity),
		nullIfEmpty(event.DetailJSON),
		event.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log event: %w", err)
	}
	return nil
}

// #endregion log-event

// #region recent-events
// RecentEvents returns a session's latest events, newest first.
func RecentEvents(db *sql.DB, sessionID string, limit int) ([]FrameEvent, error) {
	rows, err := db.Query(
		`SELECT session_id, frame_index, event_type, issue, severity, detail_json, created_at
		 FROM frame_events WHERE session_id = ?
		 ORDER BY frame_index DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	defer rows.Close()

	var events []FrameEvent
	for rows.Next() {
		var ev FrameEvent
		var issue, severity, detail sql.NullString
		var createdStr string

		if err := rows.Scan(&ev.SessionID, &ev.FrameIndex, &ev.EventType, &issue, &severity, &detail, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		ev.Issue = issue.String
		ev.Severity = severity.String
		ev.DetailJSON = detail.String
		ev.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// #endregion recent-events

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
