package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/repwise/form-analyzer/internal/exercise"
	"github.com/repwise/form-analyzer/internal/pose"
	"github.com/repwise/form-analyzer/internal/session"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a recorded
// pose stream plus the rep boundaries the pipeline is expected to find.
type Fixture struct {
	Description string        `json:"description"`
	Exercise    exercise.Type `json:"exercise"`
	Config      FixtureConfig `json:"config"`
	Frames      []pose.Pose   `json:"frames"`

	// ExpectedReps lists the 1-based frame indices on which a rep must be
	// counted; empty means only ExpectedRepCount is checked.
	ExpectedReps     []int `json:"expected_reps,omitempty"`
	ExpectedRepCount int   `json:"expected_rep_count"`
}

// FixtureConfig mirrors session.Config with JSON tags.
type FixtureConfig struct {
	CooldownFrames int     `json:"cooldown_frames"`
	ScoreDecay     float64 `json:"score_decay"`
	RepBonus       float64 `json:"rep_bonus"`
	StartScore     float64 `json:"start_score"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToSessionConfig converts a FixtureConfig to a session.Config, falling
// back to defaults when the fixture leaves the block zeroed.
func (fc FixtureConfig) ToSessionConfig() session.Config {
	if fc == (FixtureConfig{}) {
		return session.DefaultConfig()
	}
	return session.Config{
		CooldownFrames: fc.CooldownFrames,
		ScoreDecay:     fc.ScoreDecay,
		RepBonus:       fc.RepBonus,
		StartScore:     fc.StartScore,
	}
}

// #endregion fixture-loader

// #region verify

// Verify replays the fixture and diffs actual rep boundaries against the
// expectations. The returned problems are human-readable, one per
// mismatch; an empty slice means the fixture passes.
func (f *Fixture) Verify() ([]FrameOutcome, []string) {
	outcomes := Replay(f.Exercise, f.Frames, f.Config.ToSessionConfig())

	var repFrames []int
	finalCount := 0
	for _, o := range outcomes {
		if o.Action == "rep" {
			repFrames = append(repFrames, o.FrameIndex)
		}
		finalCount = o.RepCount
	}

	var problems []string
	if finalCount != f.ExpectedRepCount {
		problems = append(problems, fmt.Sprintf("rep count: got %d, want %d", finalCount, f.ExpectedRepCount))
	}
	if len(f.ExpectedReps) > 0 {
		if len(repFrames) != len(f.ExpectedReps) {
			problems = append(problems, fmt.Sprintf("rep frames: got %v, want %v", repFrames, f.ExpectedReps))
		} else {
			for i, want := range f.ExpectedReps {
				if repFrames[i] != want {
					problems = append(problems, fmt.Sprintf("rep %d: got frame %d, want frame %d", i+1, repFrames[i], want))
				}
			}
		}
	}
	return outcomes, problems
}

// #endregion verify
