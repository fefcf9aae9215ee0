// Package emote classifies the dominant emotion of free-form text with a remote LLM.
//
// The package wraps a single request/response cycle: it builds a prompt, declares a
// strict structured-output schema, sends one request through a provider, and validates
// the returned payload into an AnalysisResult. Failures are reduced to two user-facing
// kinds:
//
//   - KindMalformedResponse: the model answered, but not with a usable payload
//   - KindServiceUnreachable: anything else (network, authentication, quota)
//
// Each call emits capitan hooks for observability; nothing is retried or cached.
//
// Basic usage:
//
//	provider := gemini.New(gemini.Config{APIKey: apiKey})
//	analyzer := emote.NewAnalyzer(provider)
//	result, err := analyzer.Analyze(ctx, "I can't believe you did that, I'm thrilled!")
//	fmt.Println(result.Emotion, result.Percent())
package emote

import "context"

// Provider defines the interface for LLM providers.
// A provider performs exactly one outbound call per Call invocation.
type Provider interface {
	// Call sends the request to the LLM and returns the raw response content.
	// An error means no payload was obtained; whatever text the model produced is
	// returned untouched in ProviderResponse.Content. A body that arrived but could
	// not be decoded is reported by wrapping ErrMalformedPayload.
	Call(ctx context.Context, req *Request) (*ProviderResponse, error)

	// Name returns the provider identifier (e.g., "gemini", "openai")
	Name() string
}

// Request is what a provider receives for one classification call.
type Request struct {
	Prompt      string  // Rendered natural-language instruction
	Schema      *Schema // Structured-output contract the response must follow
	Temperature float32 // Sampling temperature
}

// TokenUsage contains token counts from a provider response.
type TokenUsage struct {
	Prompt     int // Tokens used by the prompt
	Completion int // Tokens used by the completion
	Total      int // Total tokens used
}

// ProviderResponse contains the response from an LLM provider.
type ProviderResponse struct {
	Content string     // The text response content
	Usage   TokenUsage // Token usage statistics
}
