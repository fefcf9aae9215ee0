package emote

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
)

// Schema is a structured-output contract in JSON Schema terms.
// Providers translate it into their own dialect before sending it.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// PropertyNames returns the property names in required order first, then the rest sorted.
func (s *Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	seen := make(map[string]bool, len(s.Properties))
	for _, name := range s.Required {
		if _, ok := s.Properties[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range s.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// JSON renders the schema for embedding in a prompt.
func (s *Schema) JSON() string {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// fieldHint supplies schema details that struct tags cannot carry.
type fieldHint struct {
	Enum        []string
	Description string
}

var (
	responseSchemaOnce sync.Once
	responseSchema     *Schema
)

// ResponseSchema returns the contract every classification response must satisfy:
// an object with a required enum-constrained "emotion" string and a required
// "confidence" number.
func ResponseSchema() *Schema {
	responseSchemaOnce.Do(func() {
		metadata := sentinel.Inspect[AnalysisResult]()
		responseSchema = buildSchema(metadata.Fields, map[string]fieldHint{
			"emotion": {
				Enum:        EmotionNames(),
				Description: "The dominant emotion detected in the text.",
			},
			"confidence": {
				Description: "A confidence score between 0.0 and 1.0 for the detected emotion.",
			},
		})
	})
	return responseSchema
}

// buildSchema converts field metadata to an object schema.
func buildSchema(fields []sentinel.FieldMetadata, hints map[string]fieldHint) *Schema {
	schema := &Schema{
		Type:       "object",
		Properties: make(map[string]*Schema),
	}

	for _, field := range fields {
		jsonName := getJSONFieldName(field)
		if jsonName == "-" {
			continue
		}

		prop := &Schema{Type: goTypeToJSONType(field.Type)}
		if desc, ok := field.Tags["desc"]; ok {
			prop.Description = desc
		}
		if hint, ok := hints[jsonName]; ok {
			if len(hint.Enum) > 0 {
				prop.Type = "string"
				prop.Enum = append([]string(nil), hint.Enum...)
			}
			if prop.Description == "" {
				prop.Description = hint.Description
			}
		}
		schema.Properties[jsonName] = prop

		if !hasOmitempty(field) {
			schema.Required = append(schema.Required, jsonName)
		}
	}

	return schema
}

// getJSONFieldName extracts the JSON field name from metadata.
func getJSONFieldName(field sentinel.FieldMetadata) string {
	if jsonTag, ok := field.Tags["json"]; ok {
		parts := strings.Split(jsonTag, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0]
		}
	}
	return strings.ToLower(field.Name[:1]) + field.Name[1:]
}

// hasOmitempty checks if the json tag contains omitempty.
func hasOmitempty(field sentinel.FieldMetadata) bool {
	if jsonTag, ok := field.Tags["json"]; ok {
		return strings.Contains(jsonTag, "omitempty")
	}
	return false
}

// goTypeToJSONType maps Go types to JSON Schema types.
func goTypeToJSONType(goType string) string {
	switch {
	case strings.HasPrefix(goType, "string"):
		return "string"
	case strings.HasPrefix(goType, "int"), strings.HasPrefix(goType, "uint"):
		return "integer"
	case strings.HasPrefix(goType, "float"):
		return "number"
	case strings.HasPrefix(goType, "bool"):
		return "boolean"
	case strings.HasPrefix(goType, "[]"):
		return "array"
	default:
		return "object"
	}
}
