package rep

import (
	"math"
	"math/rand"
	"testing"

	"github.com/repwise/form-analyzer/internal/exercise"
	"github.com/repwise/form-analyzer/internal/pose"
)

// #region pose-builders

func kp(name string, x, y float64) pose.Keypoint {
	return pose.Keypoint{Name: name, X: x, Y: y, Confidence: 0.9}
}

// poseWithElbowAngle realizes an exact left elbow angle.
func poseWithElbowAngle(deg float64) pose.Pose {
	rad := (deg - 90) * math.Pi / 180
	return pose.Pose{
		Confidence: 0.9,
		Keypoints: []pose.Keypoint{
			kp(pose.LeftShoulder, 100, 100),
			kp(pose.LeftElbow, 100, 140),
			kp(pose.LeftWrist, 100+40*math.Cos(rad), 140+40*math.Sin(rad)),
		},
	}
}

// poseWithChinToBar realizes nose.y − mean(wrist y) = metric.
func poseWithChinToBar(metric float64) pose.Pose {
	return pose.Pose{
		Confidence: 0.9,
		Keypoints: []pose.Keypoint{
			kp(pose.Nose, 120, 100+metric),
			kp(pose.LeftWrist, 100, 100),
			kp(pose.RightWrist, 140, 100),
		},
	}
}

// poseWithTorsoAngle realizes an exact nose–shoulder–hip angle.
func poseWithTorsoAngle(deg float64) pose.Pose {
	rad := -deg * math.Pi / 180
	return pose.Pose{
		Confidence: 0.9,
		Keypoints: []pose.Keypoint{
			kp(pose.Nose, 150+50*math.Cos(rad), 200+50*math.Sin(rad)),
			kp(pose.LeftShoulder, 150, 200),
			kp(pose.LeftHip, 200, 200),
		},
	}
}

func repeat(p pose.Pose, n int) []pose.Pose {
	out := make([]pose.Pose, n)
	for i := range out {
		out[i] = p
	}
	return out
}

// #endregion pose-builders

// #region preconditions

func TestDetect_ShortHistoryNeverFires(t *testing.T) {
	current := poseWithElbowAngle(170)
	down := poseWithElbowAngle(60)

	for n := 0; n < pose.DetectionWindow; n++ {
		if Detect(exercise.Pushups, current, repeat(down, n)) {
			t.Errorf("history of %d must not fire", n)
		}
	}
}

func TestDetect_UnknownExerciseType(t *testing.T) {
	history := repeat(poseWithElbowAngle(60), 5)
	if Detect(exercise.Run, poseWithElbowAngle(170), history) {
		t.Error("run has no rep thresholds and must never fire")
	}
	if Detect(exercise.Type("burpees"), poseWithElbowAngle(170), history) {
		t.Error("unknown type must never fire")
	}
}

// #endregion preconditions

// #region pushups

func TestDetect_Pushups(t *testing.T) {
	tests := []struct {
		name       string
		historyDeg []float64
		currentDeg float64
		want       bool
	}{
		{"down-then-up", []float64{170, 160, 85, 120, 165}, 170, true},
		{"never-down", []float64{170, 160, 120, 140, 165}, 170, false},
		{"down-not-yet-up", []float64{170, 160, 85, 120, 140}, 149, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := make([]pose.Pose, len(tt.historyDeg))
			for i, d := range tt.historyDeg {
				history[i] = poseWithElbowAngle(d)
			}
			got := Detect(exercise.Pushups, poseWithElbowAngle(tt.currentDeg), history)
			if got != tt.want {
				t.Errorf("Detect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetect_PushupMissingKeypointsDefaultExtended(t *testing.T) {
	// An empty frame reads as fully extended (180°), so a window of
	// dropped frames can never fabricate a down state.
	history := repeat(pose.Pose{}, 5)
	if Detect(exercise.Pushups, poseWithElbowAngle(170), history) {
		t.Error("missing keypoints must not register a down state")
	}
}

// #endregion pushups

// #region pullups

func TestDetect_Pullups(t *testing.T) {
	history := []pose.Pose{
		poseWithChinToBar(60),
		poseWithChinToBar(20),
		poseWithChinToBar(-5), // chin above the bar
		poseWithChinToBar(10),
		poseWithChinToBar(30),
	}

	if !Detect(exercise.Pullups, poseWithChinToBar(60), history) {
		t.Error("chin-over then extended (60 > 50) must fire")
	}
	if Detect(exercise.Pullups, poseWithChinToBar(40), history) {
		t.Error("chin-over but not extended (40 ≤ 50) must not fire")
	}

	neverOver := repeat(poseWithChinToBar(5), 5)
	if Detect(exercise.Pullups, poseWithChinToBar(60), neverOver) {
		t.Error("chin never over the bar must not fire")
	}
}

// #endregion pullups

// #region situps

func TestDetect_Situps(t *testing.T) {
	wasDown := []pose.Pose{
		poseWithTorsoAngle(45),
		poseWithTorsoAngle(20), // lying down
		poseWithTorsoAngle(40),
		poseWithTorsoAngle(55),
		poseWithTorsoAngle(65),
	}

	if !Detect(exercise.Situps, poseWithTorsoAngle(75), wasDown) {
		t.Error("lying (20°) then upright (75°) must fire")
	}
	if Detect(exercise.Situps, poseWithTorsoAngle(65), wasDown) {
		t.Error("not yet upright (65° ≤ 70°) must not fire")
	}

	neverDown := repeat(poseWithTorsoAngle(35), 5)
	if Detect(exercise.Situps, poseWithTorsoAngle(75), neverDown) {
		t.Error("minimum 35° never counts as lying down")
	}
}

// #endregion situps

// #region equivalence

// streamPose builds a pose realizing metric m for ex.
func streamPose(ex exercise.Type, m float64) pose.Pose {
	switch ex {
	case exercise.Pushups:
		return poseWithElbowAngle(m)
	case exercise.Pullups:
		return poseWithChinToBar(m)
	default:
		return poseWithTorsoAngle(m)
	}
}

// randomMetric draws from a range wide enough to cross both thresholds.
func randomMetric(ex exercise.Type, rng *rand.Rand) float64 {
	switch ex {
	case exercise.Pushups:
		return 40 + rng.Float64()*140 // 40..180
	case exercise.Pullups:
		return -40 + rng.Float64()*140 // -40..100
	default:
		return rng.Float64() * 90 // 0..90
	}
}

// The windowed detector and the explicit state machine must make
// identical rep-boundary decisions on the same frame stream.
func TestDetect_WindowAndMachineEquivalence(t *testing.T) {
	exercises := []exercise.Type{exercise.Pushups, exercise.Pullups, exercise.Situps}

	for _, ex := range exercises {
		for seed := int64(0); seed < 20; seed++ {
			rng := rand.New(rand.NewSource(seed))
			machine := NewMachine(ex)
			var history []pose.Pose

			for frame := 0; frame < 400; frame++ {
				var p pose.Pose
				if rng.Float64() < 0.05 {
					p = pose.Pose{} // dropped frame, metric defaults apply
				} else {
					p = streamPose(ex, randomMetric(ex, rng))
				}

				windowed := Detect(ex, p, history)
				stepped := machine.Step(p)
				if windowed != stepped {
					t.Fatalf("%s seed %d frame %d: windowed=%v machine=%v",
						ex, seed, frame, windowed, stepped)
				}

				history = pose.AppendBounded(history, p)
			}
		}
	}
}

// #endregion equivalence

// #region metric

func TestMetric_Defaults(t *testing.T) {
	empty := pose.Pose{}

	tests := []struct {
		ex   exercise.Type
		want float64
	}{
		{exercise.Pushups, 180},
		{exercise.Pullups, 100},
		{exercise.Situps, 0},
	}
	for _, tt := range tests {
		m, ok := Metric(tt.ex, empty)
		if !ok || m != tt.want {
			t.Errorf("%s: Metric(empty) = %v,%v, want %v,true", tt.ex, m, ok, tt.want)
		}
	}

	if _, ok := Metric(exercise.Run, empty); ok {
		t.Error("run has no metric")
	}
}

func TestMetric_LowConfidenceTreatedAsMissing(t *testing.T) {
	p := poseWithElbowAngle(60)
	p.Keypoints[1].Confidence = 0.1 // left elbow unreliable
	m, _ := Metric(exercise.Pushups, p)
	if m != 180 {
		t.Errorf("Metric = %v, want default 180 when elbow is unreliable", m)
	}
}

// #endregion metric
