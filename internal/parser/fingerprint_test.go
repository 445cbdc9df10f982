package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	total := decimal.RequireFromString("45.67")

	a := Fingerprint("Costco", "2024-12-29", total)
	assert.Len(t, a, 64)

	// Deterministic and case-insensitive on the store.
	assert.Equal(t, a, Fingerprint("Costco", "2024-12-29", total))
	assert.Equal(t, a, Fingerprint("COSTCO", "2024-12-29", total))

	// Totals compare at two decimal places.
	assert.Equal(t, a, Fingerprint("Costco", "2024-12-29", decimal.RequireFromString("45.670")))

	// Any field change produces a different hash.
	assert.NotEqual(t, a, Fingerprint("Walmart", "2024-12-29", total))
	assert.NotEqual(t, a, Fingerprint("Costco", "2024-12-30", total))
	assert.NotEqual(t, a, Fingerprint("Costco", "2024-12-29", decimal.RequireFromString("45.68")))
}
