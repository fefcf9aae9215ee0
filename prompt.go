package emote

import (
	"fmt"
	"strings"
)

// Task is the instruction given to the model for every classification.
const Task = "Analyze the dominant emotion of the following text. " +
	"Consider the context, tone, and word choice to determine the most fitting emotion."

// Prompt represents a structured LLM prompt with consistent formatting.
type Prompt struct {
	Task        string   // Required: what the LLM should do
	Input       string   // Required: the text to classify
	Context     string   // Optional: additional context
	Categories  []string // Allowed labels
	Schema      string   // Required: JSON schema for response
	Constraints []string // Rules and constraints
}

// NewPrompt builds the classification prompt for text.
func NewPrompt(text string, schema *Schema) *Prompt {
	return &Prompt{
		Task:       Task,
		Input:      fmt.Sprintf("%q", text),
		Categories: EmotionNames(),
		Schema:     schema.JSON(),
		Constraints: []string{
			"emotion: exactly one of the categories, spelled as listed",
			"confidence: number from 0.0 to 1.0",
			"return only the JSON object",
		},
	}
}

// Render converts the structured prompt to a string for the LLM.
// Sections are always emitted in the same order.
func (p *Prompt) Render() string {
	var sections []string

	if p.Task != "" {
		sections = append(sections, "Task: "+p.Task)
	}

	if p.Input != "" {
		sections = append(sections, "Text: "+p.Input)
	}

	if p.Context != "" {
		sections = append(sections, "Context: "+p.Context)
	}

	if len(p.Categories) > 0 {
		var b strings.Builder
		b.WriteString("Categories:\n")
		for i, c := range p.Categories {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, c)
		}
		sections = append(sections, strings.TrimSpace(b.String()))
	}

	if p.Schema != "" {
		sections = append(sections, "Return JSON:\n"+p.Schema)
	}

	// Constraints - always last
	if len(p.Constraints) > 0 {
		var b strings.Builder
		b.WriteString("Constraints:\n")
		for _, c := range p.Constraints {
			b.WriteString("- " + c + "\n")
		}
		sections = append(sections, strings.TrimSpace(b.String()))
	}

	return strings.Join(sections, "\n\n")
}

// Validate checks if the prompt has required fields.
func (p *Prompt) Validate() error {
	if p.Task == "" {
		return fmt.Errorf("prompt missing required Task field")
	}
	if p.Input == "" {
		return fmt.Errorf("prompt missing required Input field")
	}
	if p.Schema == "" {
		return fmt.Errorf("prompt missing required Schema field")
	}
	return nil
}
