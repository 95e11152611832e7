package rep

// #region imports
import (
	"github.com/repwise/form-analyzer/internal/exercise"
	"github.com/repwise/form-analyzer/internal/pose"
)

// #endregion

// #region thresholds

// thresholds describes one exercise's down/up edge in metric space.
// downBelow marks the bottom of the movement; upAbove marks the return
// to the extended state that completes the rep.
type thresholds struct {
	downBelow float64
	upAbove   float64
}

// Threshold values are behavioral contracts tuned on recorded sessions.
var repThresholds = map[exercise.Type]thresholds{
	exercise.Pushups: {downBelow: 90, upAbove: 150},
	exercise.Pullups: {downBelow: 0, upAbove: 50},
	exercise.Situps:  {downBelow: 30, upAbove: 70},
}

// #endregion thresholds

// #region detect

// Detect reports whether a full down→up cycle has just completed.
// It recomputes the down state from the most recent DetectionWindow
// history entries every call rather than persisting a state machine, so
// an isolated dropped frame inside the window cannot lose a rep. History
// shorter than the window returns false; that is a precondition, not an
// error. Double-count prevention while the exerciser stays up is the
// caller's responsibility.
func Detect(ex exercise.Type, current pose.Pose, history []pose.Pose) bool {
	th, ok := repThresholds[ex]
	if !ok {
		return false
	}
	if len(history) < pose.DetectionWindow {
		return false
	}

	window := history[len(history)-pose.DetectionWindow:]
	wasDown := false
	for _, past := range window {
		m, _ := Metric(ex, past)
		if m < th.downBelow {
			wasDown = true
			break
		}
	}
	if !wasDown {
		return false
	}

	now, _ := Metric(ex, current)
	return now > th.upAbove
}

// #endregion detect

// #region state-machine

// machineState is the explicit two-state rendering of the detector.
type machineState int

const (
	awaitingDown machineState = iota
	downSeen
)

// Machine is the explicit state-machine variant of Detect. It exists to
// pin the windowed detector's semantics: fed the same frame stream, both
// must fire on the same frames (see the equivalence test). The live path
// uses Detect; Machine serves replay verification.
//
// Two deliberate mirrors of the windowed behavior: a down state expires
// once it is more than DetectionWindow frames old, and firing does NOT
// consume the down state, so repeated up frames keep firing until the
// down expires, exactly as the sliding window does. Debounce stays
// external.
type Machine struct {
	ex     exercise.Type
	th     thresholds
	known  bool
	state  machineState
	age    int // frames since the down state was last observed
	frames int // total frames consumed
}

// NewMachine creates a state machine for ex. Unknown types never fire.
func NewMachine(ex exercise.Type) *Machine {
	th, known := repThresholds[ex]
	return &Machine{ex: ex, th: th, known: known, state: awaitingDown}
}

// Step consumes one frame and reports whether a rep completed on it.
func (m *Machine) Step(p pose.Pose) bool {
	if !m.known {
		return false
	}
	m.frames++

	metric, _ := Metric(m.ex, p)

	if metric < m.th.downBelow {
		m.state = downSeen
		m.age = 0
		return false
	}

	if m.state != downSeen {
		return false
	}
	m.age++
	if m.age > pose.DetectionWindow {
		m.state = awaitingDown
		return false
	}
	// The windowed detector only judges once a full window of history
	// exists; the current frame is not part of its own window.
	if m.frames <= pose.DetectionWindow {
		return false
	}
	return metric > m.th.upAbove
}

// #endregion state-machine
