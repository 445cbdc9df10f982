package confidence

// Decision is the workflow branch a confidence score maps to. Exactly one
// decision holds for every score in [0,1].
type Decision string

const (
	DecisionAutoApprove       Decision = "auto-approve"
	DecisionNeedsConfirmation Decision = "needs-confirmation"
	DecisionReject            Decision = "reject"
)

// Badge is a display-only label derived from a score; never stored.
type Badge string

const (
	BadgeHigh   Badge = "HIGH"
	BadgeMedium Badge = "MEDIUM"
	BadgeLow    Badge = "LOW"
	BadgeNone   Badge = ""
)

const (
	autoApproveThreshold = 0.85
	mediumBadgeThreshold = 0.60
	rejectThreshold      = 0.40
)

// Decide maps a score to its workflow decision: auto-approve at 0.85 and
// above, reject below 0.40, needs-confirmation in between.
func Decide(score float64) Decision {
	switch {
	case score >= autoApproveThreshold:
		return DecisionAutoApprove
	case score >= rejectThreshold:
		return DecisionNeedsConfirmation
	default:
		return DecisionReject
	}
}

// BadgeFor derives the display badge. The badge bands are finer than the
// decision bands (MEDIUM splits the confirmation range at 0.60); rejected
// scores carry no badge.
func BadgeFor(score float64) Badge {
	switch {
	case score >= autoApproveThreshold:
		return BadgeHigh
	case score >= mediumBadgeThreshold:
		return BadgeMedium
	case score >= rejectThreshold:
		return BadgeLow
	default:
		return BadgeNone
	}
}

// Label returns the user-facing text for a badge.
func (b Badge) Label() string {
	if b == BadgeLow {
		return "REVIEW NEEDED"
	}
	return string(b)
}

// ShouldAutoApprove reports whether the item can enter inventory unreviewed.
func ShouldAutoApprove(score float64) bool {
	return score >= autoApproveThreshold
}

// NeedsConfirmation reports whether the item must be shown to the user.
func NeedsConfirmation(score float64) bool {
	return score >= rejectThreshold && score < autoApproveThreshold
}

// ShouldReject reports whether the item is too unreliable to keep.
func ShouldReject(score float64) bool {
	return score < rejectThreshold
}

// ApplyConfirmationBoost raises a score after a user confirmation. The result
// is a fresh score for the next evaluation; history is never mutated here.
func ApplyConfirmationBoost(score float64) float64 {
	return capAt1(score + 0.15)
}

// ApplyRepetitionBoost adds a further bump once the same logical item has
// been confirmed three or more times.
func ApplyRepetitionBoost(score float64, confirmations int) float64 {
	if confirmations >= 3 {
		return capAt1(score + 0.10)
	}
	return score
}

func capAt1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
