package zeroshot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// responseSchema constrains what we accept from the inference endpoint:
// parallel non-empty label/score arrays, scores in [0,1].
var responseSchema = map[string]any{
	"type":     "object",
	"required": []string{"labels", "scores"},
	"properties": map[string]any{
		"labels": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "string", "minLength": 1},
		},
		"scores": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
	},
}

// validateResponse checks raw against responseSchema before any field is
// trusted.
func validateResponse(raw []byte) error {
	b, err := json.Marshal(responseSchema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("response.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("response.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("response does not match schema: %w", err)
	}
	return nil
}
