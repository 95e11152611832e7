// Package replay runs recorded pose streams through the full per-frame
// pipeline in memory, for regression fixtures and post-hoc session review.
package replay

import (
	"github.com/repwise/form-analyzer/internal/exercise"
	"github.com/repwise/form-analyzer/internal/form"
	"github.com/repwise/form-analyzer/internal/pose"
	"github.com/repwise/form-analyzer/internal/session"
)

// #region types

// FrameOutcome captures the pipeline's decision for one replayed frame.
type FrameOutcome struct {
	FrameIndex int
	Action     string // "rep" | "invalid_form" | "low_confidence" | "ok"
	Issue      string
	Severity   form.Severity
	RepCount   int
	FormScore  float64
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalFrames   int
	Reps          int
	ValidFrames   int
	InvalidFrames int
	FinalScore    float64
}

// #endregion types

// #region replay

// Replay feeds frames through validate → detect → session accounting,
// exactly as the live loop would, and returns one outcome per frame.
func Replay(ex exercise.Type, frames []pose.Pose, config session.Config) []FrameOutcome {
	tracker := session.NewTracker(ex, config)
	outcomes := make([]FrameOutcome, 0, len(frames))

	for _, p := range frames {
		res := tracker.ProcessFrame(p)

		action := "ok"
		switch {
		case res.RepCounted:
			action = "rep"
		case res.Surfaced.Issue == form.IssueLowVisibility:
			action = "low_confidence"
		case !res.Validation.IsValidRep:
			action = "invalid_form"
		}

		outcomes = append(outcomes, FrameOutcome{
			FrameIndex: res.FrameIndex,
			Action:     action,
			Issue:      res.Surfaced.Issue,
			Severity:   res.Surfaced.Severity,
			RepCount:   res.RepCount,
			FormScore:  res.FormScore,
		})
	}

	return outcomes
}

// Summarize computes aggregate stats from replay outcomes.
func Summarize(outcomes []FrameOutcome) Summary {
	s := Summary{TotalFrames: len(outcomes)}
	for _, o := range outcomes {
		switch o.Action {
		case "rep":
			s.Reps++
			s.ValidFrames++
		case "ok":
			s.ValidFrames++
		default:
			s.InvalidFrames++
		}
	}
	if len(outcomes) > 0 {
		s.FinalScore = outcomes[len(outcomes)-1].FormScore
	}
	return s
}

// #endregion replay
