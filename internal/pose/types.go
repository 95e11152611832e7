package pose

// #region keypoint-names

// Keypoint names follow the upstream estimator's COCO-style skeleton.
const (
	Nose          = "nose"
	LeftShoulder  = "left_shoulder"
	RightShoulder = "right_shoulder"
	LeftElbow     = "left_elbow"
	RightElbow    = "right_elbow"
	LeftWrist     = "left_wrist"
	RightWrist    = "right_wrist"
	LeftHip       = "left_hip"
	RightHip      = "right_hip"
	LeftKnee      = "left_knee"
	RightKnee     = "right_knee"
	LeftAnkle     = "left_ankle"
	RightAnkle    = "right_ankle"
)

// ConfidenceFloor is the minimum per-keypoint detection confidence.
// Keypoints below it are treated as absent.
const ConfidenceFloor = 0.3

// #endregion keypoint-names

// #region keypoint

// Keypoint is one named 2-D body landmark with a detection confidence in [0, 1].
type Keypoint struct {
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// #endregion keypoint

// #region pose

// Pose is the full set of keypoints detected in one video frame.
// Immutable once produced by the estimator; identity of keypoints is by name.
type Pose struct {
	Keypoints  []Keypoint `json:"keypoints"`
	Confidence float64    `json:"confidence"`
}

// Find returns the named keypoint, or ok=false when the estimator did not
// report it for this frame.
func (p Pose) Find(name string) (Keypoint, bool) {
	for _, kp := range p.Keypoints {
		if kp.Name == name {
			return kp, true
		}
	}
	return Keypoint{}, false
}

// Confident returns the named keypoint only when it is present and at or
// above the confidence floor.
func (p Pose) Confident(name string) (Keypoint, bool) {
	kp, ok := p.Find(name)
	if !ok || kp.Confidence < ConfidenceFloor {
		return Keypoint{}, false
	}
	return kp, true
}

// #endregion pose

// #region history

// HistoryLimit is how many poses callers retain for display.
// DetectionWindow is the suffix the rep detector actually reads.
const (
	HistoryLimit    = 10
	DetectionWindow = 5
)

// AppendBounded appends next to history and drops the oldest entries beyond
// HistoryLimit. History stays ordered oldest→newest.
func AppendBounded(history []Pose, next Pose) []Pose {
	history = append(history, next)
	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}
	return history
}

// #endregion history
