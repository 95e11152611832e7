package pose

import "testing"

func TestFindAndConfident(t *testing.T) {
	p := Pose{
		Keypoints: []Keypoint{
			{Name: Nose, X: 10, Y: 20, Confidence: 0.9},
			{Name: LeftWrist, X: 5, Y: 50, Confidence: 0.2},
		},
		Confidence: 0.8,
	}

	if _, ok := p.Find(Nose); !ok {
		t.Error("Find(nose) should succeed")
	}
	if _, ok := p.Find(LeftHip); ok {
		t.Error("Find(left_hip) should fail for an absent keypoint")
	}

	// Present but under the confidence floor.
	if _, ok := p.Confident(LeftWrist); ok {
		t.Error("Confident should reject confidence below the floor")
	}
	if _, ok := p.Confident(Nose); !ok {
		t.Error("Confident should accept confidence above the floor")
	}
}

func TestConfident_FloorIsInclusive(t *testing.T) {
	p := Pose{Keypoints: []Keypoint{{Name: Nose, Confidence: ConfidenceFloor}}}
	if _, ok := p.Confident(Nose); !ok {
		t.Error("confidence exactly at the floor should be accepted")
	}
}

func TestAppendBounded(t *testing.T) {
	var history []Pose
	for i := 0; i < 25; i++ {
		history = AppendBounded(history, Pose{Confidence: float64(i)})
	}
	if len(history) != HistoryLimit {
		t.Fatalf("history length = %d, want %d", len(history), HistoryLimit)
	}
	// Oldest→newest ordering with the newest at the tail.
	if history[len(history)-1].Confidence != 24 {
		t.Errorf("newest pose confidence = %f, want 24", history[len(history)-1].Confidence)
	}
	if history[0].Confidence != float64(25-HistoryLimit) {
		t.Errorf("oldest pose confidence = %f, want %d", history[0].Confidence, 25-HistoryLimit)
	}
}
