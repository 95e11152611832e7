package form

// #region imports
import (
	"math"

	"github.com/repwise/form-analyzer/internal/exercise"
	"github.com/repwise/form-analyzer/internal/pose"
)

// #endregion

// #region required-keypoints

// requiredKeypoints lists the landmarks each exercise's rules read.
// A frame missing any of them (or below the confidence floor) is judged
// unreliable and skips geometry entirely.
var requiredKeypoints = map[exercise.Type][]string{
	exercise.Pushups: {
		pose.LeftShoulder, pose.RightShoulder,
		pose.LeftElbow, pose.RightElbow,
		pose.LeftWrist, pose.RightWrist,
		pose.LeftHip, pose.RightHip,
		pose.LeftKnee, pose.RightKnee,
		pose.LeftAnkle, pose.RightAnkle,
	},
	exercise.Pullups: {
		pose.LeftShoulder, pose.RightShoulder,
		pose.LeftElbow, pose.RightElbow,
		pose.LeftWrist, pose.RightWrist,
		pose.Nose,
	},
	exercise.Situps: {
		pose.LeftShoulder, pose.RightShoulder,
		pose.LeftHip, pose.RightHip,
		pose.LeftKnee, pose.RightKnee,
		pose.Nose,
	},
}

// #endregion required-keypoints

// #region validate

// Validate checks one frame's pose against the exercise's form rules.
// Pure and deterministic; all failure modes are ordinary return values.
func Validate(ex exercise.Type, p pose.Pose) Validation {
	required, ok := requiredKeypoints[ex]
	if !ok {
		return Validation{
			IsValidRep: false,
			Feedback: []Feedback{{
				Issue:    IssueUnknownExercise,
				Severity: SeverityError,
				IsValid:  false,
			}},
		}
	}

	// Visibility pass: geometry on unreliable keypoints produces noise,
	// so one warning short-circuits the frame.
	points := make(map[string]pose.Keypoint, len(required))
	for _, name := range required {
		kp, ok := p.Confident(name)
		if !ok {
			return Validation{
				IsValidRep: false,
				Feedback: []Feedback{{
					Issue:    IssueLowVisibility,
					Severity: SeverityWarning,
					IsValid:  false,
				}},
			}
		}
		points[name] = kp
	}

	var feedback []Feedback
	switch ex {
	case exercise.Pushups:
		feedback = validatePushups(points)
	case exercise.Pullups:
		feedback = validatePullups(points)
	case exercise.Situps:
		feedback = validateSitups(p, points)
	}

	valid := true
	for _, fb := range feedback {
		valid = valid && fb.IsValid
	}

	return Validation{IsValidRep: valid, Feedback: feedback}
}

// #endregion validate

// #region pushups

func validatePushups(points map[string]pose.Keypoint) []Feedback {
	var feedback []Feedback

	// 1. Elbow angle within the working range, both arms.
	leftElbow := pose.Angle(points[pose.LeftShoulder], points[pose.LeftElbow], points[pose.LeftWrist])
	rightElbow := pose.Angle(points[pose.RightShoulder], points[pose.RightElbow], points[pose.RightWrist])
	feedback = append(feedback, judge(
		inRange(leftElbow, pushupElbowMin, pushupElbowMax) && inRange(rightElbow, pushupElbowMin, pushupElbowMax),
		"Good elbow angle",
		"Improper elbow angle",
		SeverityWarning,
	))

	// 2. Back alignment: shoulder–hip–knee close to a straight line.
	leftBack := pose.Angle(points[pose.LeftShoulder], points[pose.LeftHip], points[pose.LeftKnee])
	rightBack := pose.Angle(points[pose.RightShoulder], points[pose.RightHip], points[pose.RightKnee])
	feedback = append(feedback, judge(
		leftBack >= pushupBackMin && rightBack >= pushupBackMin,
		"Back is straight",
		"Back not straight",
		SeverityWarning,
	))

	// 3. Depth: vertical shoulder-to-elbow separation on both sides.
	// Insufficient depth fully invalidates the rep, hence error severity.
	leftDrop := math.Abs(points[pose.LeftShoulder].Y - points[pose.LeftElbow].Y)
	rightDrop := math.Abs(points[pose.RightShoulder].Y - points[pose.RightElbow].Y)
	feedback = append(feedback, judge(
		leftDrop >= pushupDepthTravel && rightDrop >= pushupDepthTravel,
		"Good depth",
		"Not going low enough",
		SeverityError,
	))

	return feedback
}

// #endregion pushups

// #region pullups

func validatePullups(points map[string]pose.Keypoint) []Feedback {
	var feedback []Feedback

	// 1. Chin over bar: nose above the wrist line (image y grows downward).
	wristY := (points[pose.LeftWrist].Y + points[pose.RightWrist].Y) / 2
	feedback = append(feedback, judge(
		points[pose.Nose].Y < wristY,
		"Chin over bar",
		"Chin not over bar",
		SeverityError,
	))

	// 2. Full extension at the bottom of the movement.
	leftElbow := pose.Angle(points[pose.LeftShoulder], points[pose.LeftElbow], points[pose.LeftWrist])
	rightElbow := pose.Angle(points[pose.RightShoulder], points[pose.RightElbow], points[pose.RightWrist])
	feedback = append(feedback, judge(
		leftElbow >= pullupExtensionMin && rightElbow >= pullupExtensionMin,
		"Arms fully extended",
		"Arms not fully extended",
		SeverityWarning,
	))

	return feedback
}

// #endregion pullups

// #region situps

func validateSitups(p pose.Pose, points map[string]pose.Keypoint) []Feedback {
	var feedback []Feedback

	// 1. Torso raised: nose–shoulder–hip opens past the sitting threshold.
	torso := pose.Angle(points[pose.Nose], points[pose.LeftShoulder], points[pose.LeftHip])
	feedback = append(feedback, judge(
		torso >= situpTorsoMin,
		"Sitting up fully",
		"Not sitting up enough",
		SeverityError,
	))

	// 2. Knees bent, both legs. Ankles are not part of the required set;
	// when either is missing the rule passes rather than judging on a
	// fabricated point.
	kneesPass := true
	leftAnkle, lok := p.Find(pose.LeftAnkle)
	rightAnkle, rok := p.Find(pose.RightAnkle)
	if lok && rok {
		leftKnee := pose.Angle(points[pose.LeftHip], points[pose.LeftKnee], leftAnkle)
		rightKnee := pose.Angle(points[pose.RightHip], points[pose.RightKnee], rightAnkle)
		kneesPass = leftKnee <= situpKneeMax && rightKnee <= situpKneeMax
	}
	feedback = append(feedback, judge(
		kneesPass,
		"Knees bent properly",
		"Knees not bent properly",
		SeverityWarning,
	))

	return feedback
}

// #endregion situps

// #region helpers

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// judge builds the pass or fail feedback for one rule.
func judge(pass bool, passIssue, failIssue string, failSeverity Severity) Feedback {
	if pass {
		return Feedback{Issue: passIssue, Severity: SeverityInfo, IsValid: true}
	}
	return Feedback{Issue: failIssue, Severity: failSeverity, IsValid: false}
}

// #endregion helpers
