package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		score float64
		want  Decision
	}{
		{1.0, DecisionAutoApprove},
		{0.85, DecisionAutoApprove},
		{0.8499, DecisionNeedsConfirmation},
		{0.60, DecisionNeedsConfirmation},
		{0.40, DecisionNeedsConfirmation},
		{0.3999, DecisionReject},
		{0.0, DecisionReject},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Decide(tt.score), "score %v", tt.score)
	}
}

func TestDecisionPredicatesPartitionTheRange(t *testing.T) {
	for _, score := range []float64{0, 0.1, 0.3999, 0.40, 0.5, 0.8499, 0.85, 0.99, 1} {
		count := 0
		for _, hit := range []bool{ShouldAutoApprove(score), NeedsConfirmation(score), ShouldReject(score)} {
			if hit {
				count++
			}
		}
		assert.Equal(t, 1, count, "score %v", score)
	}
}

func TestBadgeFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Badge
	}{
		{0.92, BadgeHigh},
		{0.85, BadgeHigh},
		{0.70, BadgeMedium},
		{0.60, BadgeMedium},
		{0.50, BadgeLow},
		{0.40, BadgeLow},
		{0.39, BadgeNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BadgeFor(tt.score), "score %v", tt.score)
	}
}

func TestBadgeLabel(t *testing.T) {
	assert.Equal(t, "HIGH", BadgeHigh.Label())
	assert.Equal(t, "MEDIUM", BadgeMedium.Label())
	assert.Equal(t, "REVIEW NEEDED", BadgeLow.Label())
	assert.Equal(t, "", BadgeNone.Label())
}

func TestConfirmationBoost(t *testing.T) {
	assert.InDelta(t, 0.65, ApplyConfirmationBoost(0.50), 1e-9)
	// Boosts never push past 1.
	assert.Equal(t, 1.0, ApplyConfirmationBoost(0.92))
}

func TestRepetitionBoost(t *testing.T) {
	assert.Equal(t, 0.50, ApplyRepetitionBoost(0.50, 0))
	assert.Equal(t, 0.50, ApplyRepetitionBoost(0.50, 2))
	assert.InDelta(t, 0.60, ApplyRepetitionBoost(0.50, 3), 1e-9)
	assert.Equal(t, 1.0, ApplyRepetitionBoost(0.95, 5))
}
