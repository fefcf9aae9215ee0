package emote

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// decodeResult turns raw model output into a validated AnalysisResult.
// Every error it returns describes a malformed payload.
func decodeResult(raw string) (AnalysisResult, error) {
	var result AnalysisResult

	body := cleanJSON(raw)
	if body == "" {
		return result, fmt.Errorf("empty response body")
	}
	if !gjson.Valid(body) {
		return result, fmt.Errorf("response is not valid JSON")
	}

	doc := gjson.Parse(body)
	if !doc.IsObject() {
		return result, fmt.Errorf("response is not a JSON object")
	}

	emotion := doc.Get("emotion")
	if emotion.Type != gjson.String {
		return result, fmt.Errorf("emotion must be a string, got %s", describe(emotion))
	}
	label, ok := ParseEmotion(emotion.Str)
	if !ok {
		return result, fmt.Errorf("emotion %q is not a known label", emotion.Str)
	}

	confidence := doc.Get("confidence")
	if confidence.Type != gjson.Number {
		return result, fmt.Errorf("confidence must be a number, got %s", describe(confidence))
	}

	result = AnalysisResult{Emotion: label, Confidence: confidence.Num}
	if err := result.Validate(); err != nil {
		return AnalysisResult{}, err
	}
	return result, nil
}

// cleanJSON strips surrounding whitespace and a Markdown code fence.
func cleanJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}

func describe(r gjson.Result) string {
	if !r.Exists() {
		return "nothing"
	}
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	default:
		if r.IsArray() {
			return "array"
		}
		return "object"
	}
}
