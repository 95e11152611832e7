package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/repwise/form-analyzer/internal/exercise"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id  TEXT PRIMARY KEY,
	exercise    TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	ended_at    TEXT,
	frames      INTEGER NOT NULL DEFAULT 0,
	rep_count   INTEGER NOT NULL DEFAULT 0,
	form_score  REAL NOT NULL DEFAULT 100
);

CREATE TABLE IF NOT EXISTS rep_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	rep_num     INTEGER NOT NULL,
	frame_index INTEGER NOT NULL,
	metric      REAL NOT NULL,
	valid_form  INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE TABLE IF NOT EXISTS frame_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	frame_index INTEGER NOT NULL,
	event_type  TEXT NOT NULL,
	issue       TEXT,
	severity    TEXT,
	detail_json TEXT,
	created_at  TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE INDEX IF NOT EXISTS idx_rep_events_session ON rep_events(session_id);
CREATE INDEX IF NOT EXISTS idx_frame_events_session ON frame_events(session_id);
`

// #endregion schema

// #region store-struct
// Store manages session results in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region create-session
// CreateSession inserts a new open session row.
func (s *Store) CreateSession(sessionID string, ex exercise.Type, startedAt time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (session_id, exercise, started_at) VALUES (?, ?, ?)`,
		sessionID, string(ex), startedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// #endregion create-session

// #region finish-session
// FinishSession closes a session and records its final totals atomically.
func (s *Store) FinishSession(sessionID string, endedAt time.Time, frames, repCount int, formScore float64) error {
	res, err := s.db.Exec(
		`UPDATE sessions SET ended_at = ?, frames = ?, rep_count = ?, form_score = ?
		 WHERE session_id = ?`,
		endedAt.UTC().Format(time.RFC3339Nano), frames, repCount, formScore, sessionID,
	)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}

// #endregion finish-session

// #region get-session
// GetSession retrieves a session by ID.
func (s *Store) GetSession(sessionID string) (SessionRecord, error) {
	var rec SessionRecord
	var ex string
	var startedStr string
	var endedStr sql.NullString

	err := s.db.QueryRow(
		`SELECT session_id, exercise, started_at, ended_at, frames, rep_count, form_score
		 FROM sessions WHERE session_id = ?`, sessionID,
	).Scan(&rec.SessionID, &ex, &startedStr, &endedStr, &rec.Frames, &rec.RepCount, &rec.FormScore)
	if err != nil {
		return SessionRecord{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}

	rec.Exercise = exercise.Type(ex)
	rec.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
	if endedStr.Valid {
		rec.EndedAt, _ = time.Parse(time.RFC3339Nano, endedStr.String)
	}
	return rec, nil
}

// #endregion get-session

// #region list-sessions
// ListSessions returns the most recent sessions.
func (s *Store) ListSessions(limit int) ([]SessionRecord, error) {
	rows, err := s.db.Query(
		`SELECT session_id, exercise, started_at, ended_at, frames, rep_count, form_score
		 FROM sessions ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var ex string
		var startedStr string
		var endedStr sql.NullString

		if err := rows.Scan(&rec.SessionID, &ex, &startedStr, &endedStr, &rec.Frames, &rec.RepCount, &rec.FormScore); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.Exercise = exercise.Type(ex)
		rec.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
		if endedStr.Valid {
			rec.EndedAt, _ = time.Parse(time.RFC3339Nano, endedStr.String)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-sessions

// #region record-rep
// RecordRep persists one counted repetition.
func (s *Store) RecordRep(rec RepRecord) error {
	valid := 0
	if rec.ValidForm {
		valid = 1
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO rep_events (session_id, rep_num, frame_index, metric, valid_form, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.RepNum, rec.FrameIndex, rec.Metric, valid,
		created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert rep: %w", err)
	}
	return nil
}

// #endregion record-rep

// #region session-reps
// SessionReps returns a session's repetitions in counting order.
func (s *Store) SessionReps(sessionID string) ([]RepRecord, error) {
	rows, err := s.db.Query(
		`SELECT session_id, rep_num, frame_index, metric, valid_form, created_at
		 FROM rep_events WHERE session_id = ? ORDER BY rep_num`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("session reps: %w", err)
	}
	defer rows.Close()

	var records []RepRecord
	for rows.Next() {
		var rec RepRecord
		var valid int
		var createdStr string

		if err := rows.Scan(&rec.SessionID, &rec.RepNum, &rec.FrameIndex, &rec.Metric, &valid, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.ValidForm = valid != 0
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion session-reps
