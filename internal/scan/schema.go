package scan

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
)

// BuildProcessRequestSchema returns a JSON-Schema (draft 2020-12 subset) for
// the scan-processing payload. The OCR provider's output is untrusted input,
// so the payload is validated before it reaches the parser.
func BuildProcessRequestSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"raw_text": map[string]any{"type": "string"},
			"tokens": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"text":       map[string]any{"type": "string"},
						"confidence": map[string]any{"type": "number"},
					},
				},
			},
			"source": map[string]any{
				"type": "string",
				"enum": constants.SourceTypes(),
			},
		},
		"required": []any{"raw_text"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
