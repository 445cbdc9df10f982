package constants

// SourceType describes the provenance of an item observation.
type SourceType string

// Stable values (store these exact strings in DB).
const (
	SourceValidatedReceipt SourceType = "validated_receipt" // parsed from a readable receipt scan
	SourceManualEntry      SourceType = "manual_entry"      // typed in by the user
	SourcePartialOCR       SourceType = "partial_ocr"       // low-quality or truncated OCR output
)

var allSources = []SourceType{
	SourceValidatedReceipt,
	SourceManualEntry,
	SourcePartialOCR,
}

// SourceTypes returns the allowed source tags as strings.
func SourceTypes() []string {
	result := make([]string, len(allSources))
	for i, s := range allSources {
		result[i] = string(s)
	}
	return result
}

// IsValidSource reports whether input is a known source tag.
func IsValidSource(input string) bool {
	for _, s := range allSources {
		if input == string(s) {
			return true
		}
	}
	return false
}
