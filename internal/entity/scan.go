package entity

import "github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"

// OCRToken is one token from the external OCR provider. The first token in a
// response represents the full text block and carries no per-word confidence.
type OCRToken struct {
	Text       string  `json:"text,omitempty"`
	Confidence float64 `json:"confidence"`
}

// ScoredItem pairs an extracted line item with its trust evaluation.
type ScoredItem struct {
	Item       ReceiptLineItem `json:"item"`
	Confidence float64         `json:"confidence"`
	Decision   string          `json:"decision"`
	Badge      string          `json:"badge,omitempty"`
}

// ScanResult is the outcome of processing one receipt's OCR text.
type ScanResult struct {
	Fingerprint   string               `json:"fingerprint"`
	Receipt       ParsedReceipt        `json:"receipt"`
	Items         []ScoredItem         `json:"items"`
	OCRConfidence float64              `json:"ocr_confidence"`
	Source        constants.SourceType `json:"source"`
}

// DuplicateMatch reports whether a fingerprint (or a near-identical receipt)
// has been scanned before.
type DuplicateMatch struct {
	IsDuplicate bool            `json:"is_duplicate"`
	MatchType   string          `json:"match_type,omitempty"` // "exact" or "similar"
	Existing    *ScannedReceipt `json:"existing,omitempty"`
	Confidence  float64         `json:"confidence,omitempty"`
}
