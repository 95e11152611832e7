package pose

import "math"

// #region angle

// Angle computes the angle at p2 formed by p1–p2–p3, in degrees.
// It is the absolute difference of the two atan2 directions. No modulo
// normalization is applied, so configurations whose signed difference
// lands near ±360° can exceed 180°; callers treat values above 180° as
// the reflex of 360°−angle.
func Angle(p1, p2, p3 Keypoint) float64 {
	rad := math.Atan2(p3.Y-p2.Y, p3.X-p2.X) - math.Atan2(p1.Y-p2.Y, p1.X-p2.X)
	return math.Abs(rad * 180.0 / math.Pi)
}

// #endregion angle

// #region distance

// Distance computes the Euclidean distance between two keypoints.
func Distance(p1, p2 Keypoint) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// #endregion distance
