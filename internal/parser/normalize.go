package parser

import (
	"regexp"
	"strings"
)

var (
	reUnitTokens    = regexp.MustCompile(`\b(oz|lb|kg|g|ml|l)\b`)
	reNumericTokens = regexp.MustCompile(`\b\d+(\.\d+)?\b`)
	reNonLetter     = regexp.MustCompile(`[^a-z\s]`)
	reWhitespace    = regexp.MustCompile(`\s+`)
)

// NormalizeProductName produces a comparison key for a product name: lowercase,
// unit and numeric tokens removed, punctuation stripped, whitespace collapsed.
// Total and idempotent; garbage input yields the empty string.
func NormalizeProductName(name string) string {
	s := strings.ToLower(name)
	s = reUnitTokens.ReplaceAllString(s, "")
	s = reNumericTokens.ReplaceAllString(s, "")
	s = reNonLetter.ReplaceAllString(s, "")
	s = reWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
