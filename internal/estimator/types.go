package estimator

// #region imports
import (
	"encoding/json"
	"fmt"

	"github.com/repwise/form-analyzer/internal/exercise"
	"github.com/repwise/form-analyzer/internal/pose"
)

// #endregion

// #region frame

// Frame is one per-frame message from the pose estimation service. The
// analyzer trusts keypoint names and coordinates at face value and applies
// its own confidence floor downstream.
type Frame struct {
	SessionID string        `json:"session_id"`
	Exercise  exercise.Type `json:"exercise"`
	Index     int           `json:"frame_index"`
	Pose      pose.Pose     `json:"pose"`
}

// #endregion frame

// #region decode

// DecodeFrame parses a frame payload. Pure; used by the subscriber and
// directly testable without a broker.
func DecodeFrame(payload []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(payload, &f); err != nil {
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	if f.SessionID == "" {
		return Frame{}, fmt.Errorf("decode frame: missing session_id")
	}
	return f, nil
}

// #endregion decode
