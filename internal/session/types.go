package session

// #region imports
import (
	"time"

	"github.com/repwise/form-analyzer/internal/exercise"
	"github.com/repwise/form-analyzer/internal/form"
)

// #endregion

// #region config

// Config holds session accounting knobs.
type Config struct {
	CooldownFrames int     // frames to suppress rep detection after a counted rep
	ScoreDecay     float64 // form score lost per invalid frame
	RepBonus       float64 // form score gained per valid-form rep
	StartScore     float64
}

// DefaultConfig returns the production session parameters.
func DefaultConfig() Config {
	return Config{
		CooldownFrames: 10,
		ScoreDecay:     0.5,
		RepBonus:       5,
		StartScore:     100,
	}
}

// #endregion config

// #region frame-result

// FrameResult is what one processed frame reports back to the UI layer.
type FrameResult struct {
	FrameIndex  int
	Validation  form.Validation
	Surfaced    form.Feedback // highest-severity feedback of the frame
	HasFeedback bool
	RepCounted  bool
	RepCount    int
	FormScore   float64
}

// #endregion frame-result

// #region summary

// Summary captures the state of a session for persistence.
type Summary struct {
	SessionID string
	Exercise  exercise.Type
	StartedAt time.Time
	Frames    int
	RepCount  int
	FormScore float64
}

// #endregion summary
