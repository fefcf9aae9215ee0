package emote

// AnalysisRequest flows through the pipz pipeline.
// It contains the prompt, parameters, and response data.
type AnalysisRequest struct {
	// Input fields
	Text        string  // Text supplied by the user
	Prompt      *Prompt // The structured prompt to send to LLM
	Schema      *Schema // Structured-output contract
	Temperature float32 // Temperature parameter for response generation

	// Metadata fields
	RequestID    string // Unique identifier for this request
	ProviderName string // Name of the provider being used

	// Output fields (populated by pipeline)
	Response string      // Raw text response from provider
	Usage    *TokenUsage // Token usage from provider
}
