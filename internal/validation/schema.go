package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/candidatehq/docparse/constants"
)

// Per-type JSON Schemas (draft 2020-12 subset) as generic maps. They check
// the shape of normalized records; field presence and domain rules live in
// the engine, so the schemas keep required lists empty.

// BuildSchema returns the structural schema for a document type, or nil when
// the type has no structured record.
func BuildSchema(dt constants.DocumentType) map[string]any {
	switch dt {
	case constants.DocTypeCV:
		return buildCVSchema()
	case constants.DocTypeAssessment:
		return buildAssessmentSchema()
	case constants.DocTypeInterview:
		return buildInterviewSchema()
	default:
		return nil
	}
}

func buildCVSchema() map[string]any {
	dateProp := map[string]any{
		"type":    "string",
		"pattern": `^(\d{4}(-\d{2}){0,2}|present)$`,
	}
	experience := map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"company":     map[string]any{"type": "string"},
				"title":       map[string]any{"type": "string"},
				"start_date":  dateProp,
				"end_date":    dateProp,
				"is_current":  map[string]any{"type": "boolean"},
				"description": map[string]any{"type": "string"},
				"location":    map[string]any{"type": "string"},
			},
		},
	}
	education := map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"institution":    map[string]any{"type": "string"},
				"degree":         map[string]any{"type": "string"},
				"field_of_study": map[string]any{"type": "string"},
				"start_date":     dateProp,
				"end_date":       dateProp,
				"is_current":     map[string]any{"type": "boolean"},
			},
		},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"full_name":      map[string]any{"type": "string", "minLength": 1},
			"email":          map[string]any{"type": "string", "pattern": `^[^@\s]+@[^@\s]+\.[^@\s]+$`},
			"phone":          map[string]any{"type": "string", "pattern": `^\+?[\d()\-]{6,20}$`},
			"location":       map[string]any{"type": "string"},
			"linkedin":       map[string]any{"type": "string", "pattern": `^https://`},
			"summary":        map[string]any{"type": "string"},
			"experience":     experience,
			"education":      education,
			"skills":         stringArray(),
			"languages":      stringArray(),
			"certifications": stringArray(),
		},
	}
}

func buildAssessmentSchema() map[string]any {
	dimension := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":        map[string]any{"type": "string", "minLength": 1},
			"value":       map[string]any{"type": "number", "minimum": constants.DimensionMin, "maximum": constants.DimensionMax},
			"description": map[string]any{"type": "string"},
			"category":    map[string]any{"type": "string", "enum": []string{"dark_factor", "disc", "big5", "cognitive", "other"}},
		},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"test_name":       map[string]any{"type": "string", "minLength": 1},
			"test_type":       map[string]any{"type": "string"},
			"candidate_name":  map[string]any{"type": "string"},
			"test_date":       map[string]any{"type": "string"},
			"scores":          map[string]any{"type": "array", "items": dimension},
			"sincerity_score": map[string]any{"type": "number", "minimum": constants.DimensionMin, "maximum": constants.DimensionMax},
			"interpretation":  map[string]any{"type": "string"},
		},
	}
}

func buildInterviewSchema() map[string]any {
	quote := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text":      map[string]any{"type": "string", "minLength": 1},
			"category":  map[string]any{"type": "string", "enum": []string{"risk", "strength", "concern", "neutral"}},
			"sentiment": map[string]any{"type": "string", "enum": []string{"positive", "negative", "neutral"}},
		},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"interview_type":    map[string]any{"type": "string"},
			"interviewer":       map[string]any{"type": "string"},
			"date":              map[string]any{"type": "string"},
			"summary":           map[string]any{"type": "string"},
			"key_quotes":        map[string]any{"type": "array", "items": quote},
			"flags":             stringArray(),
			"strengths":         stringArray(),
			"concerns":          stringArray(),
			"overall_sentiment": map[string]any{"type": "string"},
			"recommendation":    map[string]any{"type": "string"},
		},
	}
}

func stringArray() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

// ValidateAgainstSchema validates data against schemaMap.
func ValidateAgainstSchema(schemaMap map[string]any, data []byte) error {
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
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
