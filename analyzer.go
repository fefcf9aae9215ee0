package emote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/pipz"
)

// Analyzer classifies text into one of the seven emotion labels.
// It is safe for concurrent use; it holds no per-request state.
type Analyzer struct {
	pipeline     pipz.Chainable[*AnalysisRequest]
	providerName string
	temperature  float32
	schema       *Schema
}

// NewTerminal creates the processor that performs the single provider call.
func NewTerminal(provider Provider) pipz.Chainable[*AnalysisRequest] {
	return pipz.Apply("llm-call", func(ctx context.Context, req *AnalysisRequest) (*AnalysisRequest, error) {
		resp, err := provider.Call(ctx, &Request{
			Prompt:      req.Prompt.Render(),
			Schema:      req.Schema,
			Temperature: req.Temperature,
		})
		if err != nil {
			return req, err
		}
		if resp == nil {
			return req, errors.New("provider returned no response")
		}
		req.Response = resp.Content
		req.Usage = &resp.Usage
		return req, nil
	})
}

// NewAnalyzer creates an analyzer bound to a provider.
// Options wrap the terminal call in the order given.
func NewAnalyzer(provider Provider, opts ...Option) *Analyzer {
	var pipeline pipz.Chainable[*AnalysisRequest] = NewTerminal(provider)
	for _, opt := range opts {
		pipeline = opt(pipeline)
	}

	return &Analyzer{
		pipeline:     pipeline,
		providerName: provider.Name(),
		temperature:  DefaultTemperature,
		schema:       ResponseSchema(),
	}
}

// WithTemperature overrides the sampling temperature. Non-positive values are ignored.
func (a *Analyzer) WithTemperature(temperature float32) *Analyzer {
	if temperature > 0 {
		a.temperature = temperature
	}
	return a
}

// GetPipeline returns the internal pipeline for composition.
func (a *Analyzer) GetPipeline() pipz.Chainable[*AnalysisRequest] {
	return a.pipeline
}

// Analyze classifies text.
//
// Blank text fails with ErrBlankInput before any outbound call. Otherwise exactly one
// provider call is made and the outcome is either a validated result or an *Error whose
// Kind is KindMalformedResponse (bad payload) or KindServiceUnreachable (no payload).
func (a *Analyzer) Analyze(ctx context.Context, text string) (AnalysisResult, error) {
	var result AnalysisResult

	if strings.TrimSpace(text) == "" {
		return result, ErrBlankInput
	}

	prompt := NewPrompt(text, a.schema)
	if err := prompt.Validate(); err != nil {
		return result, fmt.Errorf("invalid prompt: %w", err)
	}

	requestID := uuid.New().String()
	request := &AnalysisRequest{
		Text:         text,
		Prompt:       prompt,
		Schema:       a.schema,
		Temperature:  a.temperature,
		RequestID:    requestID,
		ProviderName: a.providerName,
	}

	capitan.Info(ctx, RequestStarted,
		RequestIDKey.Field(requestID),
		ProviderKey.Field(a.providerName),
		InputKey.Field(text),
		TemperatureKey.Field(float64(a.temperature)),
	)

	processed, err := a.pipeline.Process(ctx, request)
	if err != nil {
		failure := unreachable(err)
		if errors.Is(err, ErrMalformedPayload) {
			failure = malformed(err)
		}
		capitan.Error(ctx, RequestFailed,
			RequestIDKey.Field(requestID),
			ProviderKey.Field(a.providerName),
			ErrorKey.Field(err.Error()),
			ErrorKindKey.Field(failure.Kind.String()),
		)
		return result, failure
	}

	result, err = decodeResult(processed.Response)
	if err != nil {
		capitan.Error(ctx, ResponseFailed,
			RequestIDKey.Field(requestID),
			ProviderKey.Field(a.providerName),
			ResponseKey.Field(processed.Response),
			ErrorKey.Field(err.Error()),
			ErrorKindKey.Field(KindMalformedResponse.String()),
		)
		return AnalysisResult{}, malformed(err)
	}

	capitan.Info(ctx, RequestCompleted,
		RequestIDKey.Field(requestID),
		ProviderKey.Field(a.providerName),
		InputKey.Field(text),
		EmotionKey.Field(string(result.Emotion)),
		ConfidenceKey.Field(result.Confidence),
		ResponseKey.Field(processed.Response),
	)

	return result, nil
}
