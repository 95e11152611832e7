package rep

// #region imports
import (
	"github.com/repwise/form-analyzer/internal/exercise"
	"github.com/repwise/form-analyzer/internal/pose"
)

// #endregion

// #region defaults

// Missing-data defaults encode "assume the extended/at-rest state", so a
// low-confidence frame can never fabricate a down state. Contract values;
// do not retune.
const (
	defaultElbowAngle = 180.0 // arms fully extended
	defaultChinToBar  = 100.0 // chin far below the bar
	defaultTorsoAngle = 0.0   // lying flat
)

// #endregion defaults

// #region metric

// Metric derives the per-pose scalar the detector thresholds for ex.
// Unknown exercise types report ok=false.
func Metric(ex exercise.Type, p pose.Pose) (float64, bool) {
	switch ex {
	case exercise.Pushups:
		return elbowAngle(p), true
	case exercise.Pullups:
		return chinToBar(p), true
	case exercise.Situps:
		return torsoAngle(p), true
	}
	return 0, false
}

// #endregion metric

// #region pushup-metric

// elbowAngle is the shoulder–elbow–wrist angle of the left arm.
func elbowAngle(p pose.Pose) float64 {
	shoulder, ok1 := p.Confident(pose.LeftShoulder)
	elbow, ok2 := p.Confident(pose.LeftElbow)
	wrist, ok3 := p.Confident(pose.LeftWrist)
	if !ok1 || !ok2 || !ok3 {
		return defaultElbowAngle
	}
	return pose.Angle(shoulder, elbow, wrist)
}

// #endregion pushup-metric

// #region pullup-metric

// chinToBar is nose.y minus the mean wrist y; negative when the chin is
// above the bar (image y grows downward).
func chinToBar(p pose.Pose) float64 {
	nose, ok1 := p.Confident(pose.Nose)
	leftWrist, ok2 := p.Confident(pose.LeftWrist)
	rightWrist, ok3 := p.Confident(pose.RightWrist)
	if !ok1 || !ok2 || !ok3 {
		return defaultChinToBar
	}
	return nose.Y - (leftWrist.Y+rightWrist.Y)/2
}

// #endregion pullup-metric

// #region situp-metric

// torsoAngle is the nose–shoulder–hip angle of the left side.
func torsoAngle(p pose.Pose) float64 {
	nose, ok1 := p.Confident(pose.Nose)
	shoulder, ok2 := p.Confident(pose.LeftShoulder)
	hip, ok3 := p.Confident(pose.LeftHip)
	if !ok1 || !ok2 || !ok3 {
		return defaultTorsoAngle
	}
	return pose.Angle(nose, shoulder, hip)
}

// #endregion situp-metric
