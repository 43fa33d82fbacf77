package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"
)

var (
	optionalString = map[string]any{"type": []any{"string", "null"}}
	optionalList   = map[string]any{
		"type":  []any{"array", "null"},
		"items": map[string]any{"type": "string"},
	}
)

// briefSchema accepts the brief as upstream clients send it: optional
// fields may be null and constraints is free text.
var briefSchema = mustSchema(map[string]any{
	"type":     "object",
	"required": []any{"product", "short_description"},
	"properties": map[string]any{
		"product":           map[string]any{"type": "string", "minLength": 1},
		"short_description": map[string]any{"type": "string", "minLength": 1},
		"target_audience":   optionalString,
		"objective":         optionalString,
		"primary_platforms": optionalList,
		"budget":            optionalString,
		"brand_voice":       optionalString,
		"key_messages":      optionalList,
		"visual_direction":  optionalString,
		"constraints":       optionalString,
		"success_metrics":   optionalList,
		"price":             optionalString,
		"is_new_product":    map[string]any{"type": []any{"boolean", "null"}},
		"competitors":       optionalList,
		"ad_type":           map[string]any{"type": "string", "enum": []any{"product", "event", "job", "generic"}},
		"category":          optionalString,
	},
})

var mediaSchema = mustSchema(map[string]any{
	"type":     "object",
	"required": []any{"product_description"},
	"properties": map[string]any{
		"product_description": map[string]any{"type": "string", "minLength": 1},
		"media_type":          map[string]any{"type": "string", "enum": []any{"image", "video"}},
		"style":               map[string]any{"type": "string"},
		"aspect":              map[string]any{"type": "string", "enum": []any{"widescreen", "square", "story", "traditional"}},
	},
})

func mustSchema(def map[string]any) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
	if err != nil {
		panic(err)
	}
	return s
}

// validationError lists the schema violations of a request body.
type validationError struct {
	Details []string
}

func (e *validationError) Error() string {
	return "invalid request: " + strings.Join(e.Details, "; ")
}

// validateJSON checks body against schema. Malformed JSON is reported as
// an error; schema violations as a *validationError.
func validateJSON(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return eris.Wrap(err, "invalid request body")
	}
	if result.Valid() {
		return nil
	}
	details := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		details[i] = desc.String()
	}
	return &validationError{Details: details}
}
