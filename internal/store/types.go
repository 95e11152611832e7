package store

import (
	"time"

	"github.com/repwise/form-analyzer/internal/exercise"
)

// #region session-record

// SessionRecord is one persisted workout session.
type SessionRecord struct {
	SessionID string
	Exercise  exercise.Type
	StartedAt time.Time
	EndedAt   time.Time // zero until FinishSession
	Frames    int
	RepCount  int
	FormScore float64
}

// #endregion session-record

// #region rep-record

// RepRecord is one counted repetition within a session.
type RepRecord struct {
	SessionID  string
	RepNum     int
	FrameIndex int
	Metric     float64 // detector metric value on the triggering frame
	ValidForm  bool    // whether the triggering frame passed validation
	CreatedAt  time.Time
}

// #endregion rep-record
