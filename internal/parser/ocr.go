package parser

import "github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"

// AverageTokenConfidence averages the per-word confidences reported by the
// OCR provider. The first token is the full text block and is skipped;
// non-positive confidences are ignored. An empty token list yields 0, a list
// with no informative tokens yields 0.5.
func AverageTokenConfidence(tokens []entity.OCRToken) float64 {
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	var n int
	for _, t := range tokens[1:] {
		if t.Confidence > 0 {
			sum += t.Confidence
			n++
		}
	}
	if n == 0 {
		return 0.5
	}
	return sum / float64(n)
}
