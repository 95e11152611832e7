// Package exercise defines the closed set of exercise types the analyzer
// understands.
package exercise

// #region type

// Type identifies an exercise in the standard test battery.
type Type string

const (
	Pushups Type = "pushups"
	Pullups Type = "pullups"
	Situps  Type = "situps"

	// Run is part of the battery but is timed, not pose-analyzed.
	// It has no geometric rules and is rejected by the analyzer.
	Run Type = "run"
)

// PoseAnalyzed reports whether t has geometric form rules.
func PoseAnalyzed(t Type) bool {
	switch t {
	case Pushups, Pullups, Situps:
		return true
	}
	return false
}

// #endregion type
