// Package session owns the per-workout accounting the pure analysis core
// deliberately leaves to its caller: the rolling pose history, rep
// debouncing, and the form score.
package session

// #region imports
import (
	"time"

	"github.com/google/uuid"
	"github.com/repwise/form-analyzer/internal/exercise"
	"github.com/repwise/form-analyzer/internal/form"
	"github.com/repwise/form-analyzer/internal/pose"
	"github.com/repwise/form-analyzer/internal/rep"
)

// #endregion

// #region tracker

// Tracker runs the validate→detect pipeline for one exerciser's session
// and accumulates reps and a form score. Not safe for concurrent use;
// the live loop drives one Tracker per session from a single goroutine.
type Tracker struct {
	id        string
	ex        exercise.Type
	config    Config
	startedAt time.Time

	history    []pose.Pose
	frameIndex int
	repCount   int
	score      float64
	cooldown   int
}

// NewTracker starts a session for the given exercise.
func NewTracker(ex exercise.Type, config Config) *Tracker {
	return &Tracker{
		id:        uuid.New().String(),
		ex:        ex,
		config:    config,
		startedAt: time.Now().UTC(),
		score:     config.StartScore,
	}
}

// ID returns the session identifier.
func (t *Tracker) ID() string { return t.id }

// #endregion tracker

// #region process-frame

// ProcessFrame runs one frame through validation and rep detection, then
// updates the rolling history. Rep detection runs before the current pose
// is appended, so the detector's window holds only prior frames.
func (t *Tracker) ProcessFrame(p pose.Pose) FrameResult {
	t.frameIndex++

	validation := form.Validate(t.ex, p)

	counted := false
	if t.cooldown > 0 {
		t.cooldown--
	} else if rep.Detect(t.ex, p, t.history) {
		// The detector re-fires while the exerciser stays up; the
		// cool-down is what keeps one physical rep from counting twice.
		counted = true
		t.repCount++
		t.cooldown = t.config.CooldownFrames
		if validation.IsValidRep {
			t.score += t.config.RepBonus
			if t.score > t.config.StartScore {
				t.score = t.config.StartScore
			}
		}
	}

	if !validation.IsValidRep {
		t.score -= t.config.ScoreDecay
		if t.score < 0 {
			t.score = 0
		}
	}

	t.history = pose.AppendBounded(t.history, p)

	result := FrameResult{
		FrameIndex: t.frameIndex,
		Validation: validation,
		RepCounted: counted,
		RepCount:   t.repCount,
		FormScore:  t.score,
	}
	result.Surfaced, result.HasFeedback = validation.Worst()
	return result
}

// #endregion process-frame

// #region accessors

// RepCount returns reps counted so far.
func (t *Tracker) RepCount() int { return t.repCount }

// FormScore returns the current form score.
func (t *Tracker) FormScore() float64 { return t.score }

// History returns the retained pose history, oldest→newest.
func (t *Tracker) History() []pose.Pose { return t.history }

// Summary snapshots the session for persistence.
func (t *Tracker) Summary() Summary {
	return Summary{
		SessionID: t.id,
		Exercise:  t.ex,
		StartedAt: t.startedAt,
		Frames:    t.frameIndex,
		RepCount:  t.repCount,
		FormScore: t.score,
	}
}

// #endregion accessors
