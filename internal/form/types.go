package form

// #region severity

// Severity grades a single piece of form feedback.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// rank orders severities for surfacing decisions (error > warning > info).
func rank(s Severity) int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	}
	return 0
}

// #endregion severity

// #region feedback

// Feedback is one judgment about a single form rule.
type Feedback struct {
	Issue    string   `json:"issue"`
	Severity Severity `json:"severity"`
	IsValid  bool     `json:"is_valid"`
}

// #endregion feedback

// #region validation

// Validation is the validator's full result for one frame.
// IsValidRep is the AND of all rule outcomes; it is always false when any
// required keypoint is missing or below the confidence floor.
type Validation struct {
	IsValidRep bool       `json:"is_valid_rep"`
	Feedback   []Feedback `json:"feedback"`
}

// Worst returns the highest-severity feedback entry, for callers that
// surface a single message per frame. ok=false when there is no feedback.
func (v Validation) Worst() (Feedback, bool) {
	if len(v.Feedback) == 0 {
		return Feedback{}, false
	}
	worst := v.Feedback[0]
	for _, fb := range v.Feedback[1:] {
		if rank(fb.Severity) > rank(worst.Severity) {
			worst = fb
		}
	}
	return worst, true
}

// #endregion validation

// #region issues

// IssueLowVisibility is the single feedback issued when required
// keypoints are missing or under the confidence floor.
const IssueLowVisibility = "Cannot see all body parts clearly"

// IssueUnknownExercise is issued for exercise types with no form rules.
const IssueUnknownExercise = "Unknown exercise type"

// #endregion issues

// #region thresholds

// Rule thresholds. Tuned against recorded test sessions; treat as
// behavioral contracts rather than free parameters.
const (
	pushupElbowMin    = 70.0
	pushupElbowMax    = 110.0
	pushupBackMin     = 160.0
	pushupDepthTravel = 30.0

	pullupExtensionMin = 150.0

	situpTorsoMin = 60.0
	situpKneeMax  = 130.0
)

// #endregion thresholds
