package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
)

func TestAverageTokenConfidence(t *testing.T) {
	tests := []struct {
		name   string
		tokens []entity.OCRToken
		want   float64
	}{
		{"no tokens", nil, 0},
		{"only the full-text block", []entity.OCRToken{{Text: "all", Confidence: 0.99}}, 0.5},
		{
			"averages word tokens",
			[]entity.OCRToken{
				{Text: "all", Confidence: 0.1},
				{Text: "MILK", Confidence: 0.9},
				{Text: "2.50", Confidence: 0.8},
			},
			0.85,
		},
		{
			"ignores non-positive confidences",
			[]entity.OCRToken{
				{Text: "all", Confidence: 0.9},
				{Text: "MILK", Confidence: 0.6},
				{Text: "??", Confidence: 0},
				{Text: "??", Confidence: -1},
			},
			0.6,
		},
		{
			"all uninformative",
			[]entity.OCRToken{
				{Text: "all", Confidence: 0.9},
				{Text: "??", Confidence: 0},
			},
			0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AverageTokenConfidence(tt.tokens), 1e-9)
		})
	}
}
