package emote

import (
	"fmt"
	"testing"
)

func TestDecodeResult(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		for _, e := range Emotions() {
			for _, c := range []float64{0, 0.25, 0.82, 1} {
				raw := fmt.Sprintf(`{"emotion":%q,"confidence":%v}`, e, c)
				result, err := decodeResult(raw)
				if err != nil {
					t.Fatalf("%s: unexpected error %v", raw, err)
				}
				if result.Emotion != e || result.Confidence != c {
					t.Errorf("%s: got %+v", raw, result)
				}
			}
		}
	})

	t.Run("reliability", func(t *testing.T) {
		bad := map[string]string{
			"unknown label":         `{"emotion":"Happiness","confidence":0.9}`,
			"lowercase label":       `{"emotion":"joy","confidence":0.9}`,
			"label not string":      `{"emotion":1,"confidence":0.9}`,
			"missing emotion":       `{"confidence":0.9}`,
			"string confidence":     `{"emotion":"Joy","confidence":"0.9"}`,
			"null confidence":       `{"emotion":"Joy","confidence":null}`,
			"missing confidence":    `{"emotion":"Joy"}`,
			"confidence above one":  `{"emotion":"Joy","confidence":1.5}`,
			"negative confidence":   `{"emotion":"Joy","confidence":-0.1}`,
			"truncated":             `{"emotion":"Joy","confid`,
			"not json":              `Joy, 82%`,
			"array":                 `[{"emotion":"Joy","confidence":0.9}]`,
			"empty":                 ``,
			"whitespace":            "  \n ",
			"bad label good number": `{"emotion":"Elation","confidence":0.5}`,
		}
		for name, raw := range bad {
			if _, err := decodeResult(raw); err == nil {
				t.Errorf("%s: expected error for %q", name, raw)
			}
		}
	})

	t.Run("chaining", func(t *testing.T) {
		raw := "```json\n{\"emotion\": \"Fear\", \"confidence\": 0.4}\n```\n"
		result, err := decodeResult(raw)
		if err != nil {
			t.Fatalf("Fenced payload should decode: %v", err)
		}
		if result.Emotion != Fear || result.Confidence != 0.4 {
			t.Errorf("Unexpected result %+v", result)
		}
	})
}

func TestCleanJSON(t *testing.T) {
	tests := map[string]string{
		`  {"a":1}  `:             `{"a":1}`,
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		"{\"a\":\"```\"}":         "{\"a\":\"```\"}",
	}
	for in, want := range tests {
		if got := cleanJSON(in); got != want {
			t.Errorf("cleanJSON(%q) = %q, want %q", in, got, want)
		}
	}
}
