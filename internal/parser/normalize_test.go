package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProductName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "ORGANIC BANANAS", "organic bananas"},
		{"strips units and numbers", "MILK 1 GAL 2% 64 oz", "milk gal"},
		{"digits dropped inside tokens", "COKE 12PK", "coke pk"},
		{"strips punctuation", "BEN & JERRY'S!", "ben jerrys"},
		{"collapses whitespace", "greek    yogurt", "greek yogurt"},
		{"garbage yields empty", "123 4.56 oz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeProductName(tt.in))
		})
	}
}

func TestNormalizeProductName_Idempotent(t *testing.T) {
	for _, in := range []string{"ORGANIC BANANAS 2 lb", "MILK", "", "coke zero 12 pk"} {
		once := NormalizeProductName(in)
		assert.Equal(t, once, NormalizeProductName(once), "input %q", in)
	}
}
