// Package testing provides utilities for testing emote analyzers.
package testing

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/emote"
)

// Provider name constants for test helpers.
const (
	SequencedProviderName = "sequenced-mock"
	FailingProviderName   = "failing-mock"
)

// ResponseBuilder provides a fluent interface for constructing mock model payloads.
type ResponseBuilder struct {
	data map[string]any
}

// NewResponseBuilder creates a new ResponseBuilder.
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{
		data: make(map[string]any),
	}
}

// WithEmotion sets the emotion field.
func (b *ResponseBuilder) WithEmotion(emotion emote.Emotion) *ResponseBuilder {
	b.data["emotion"] = string(emotion)
	return b
}

// WithConfidence sets the confidence field.
func (b *ResponseBuilder) WithConfidence(confidence float64) *ResponseBuilder {
	b.data["confidence"] = confidence
	return b
}

// WithField sets an arbitrary field, e.g. a wrongly typed confidence.
func (b *ResponseBuilder) WithField(key string, value any) *ResponseBuilder {
	b.data[key] = value
	return b
}

// Build returns the JSON string representation of the response.
func (b *ResponseBuilder) Build() string {
	jsonBytes, err := json.Marshal(b.data)
	if err != nil {
		return "{}"
	}
	return string(jsonBytes)
}

// Fenced wraps the response in a markdown json fence, as some models reply.
func (b *ResponseBuilder) Fenced() string {
	return "```json\n" + b.Build() + "\n```"
}

func usage() emote.TokenUsage {
	return emote.TokenUsage{Prompt: 100, Completion: 50, Total: 150}
}

// SequencedProvider returns responses in sequence.
// After all responses are exhausted, it returns the last response repeatedly.
type SequencedProvider struct {
	responses []string
	index     atomic.Int64
}

// NewSequencedProvider creates a provider that returns responses in order.
func NewSequencedProvider(responses ...string) *SequencedProvider {
	if len(responses) == 0 {
		responses = []string{`{"error": "no responses configured"}`}
	}
	return &SequencedProvider{
		responses: responses,
	}
}

// Call returns the next response in sequence.
func (p *SequencedProvider) Call(_ context.Context, _ *emote.Request) (*emote.ProviderResponse, error) {
	idx := int(p.index.Add(1) - 1)
	if idx >= len(p.responses) {
		idx = len(p.responses) - 1
	}
	return &emote.ProviderResponse{Content: p.responses[idx], Usage: usage()}, nil
}

// Name returns the provider identifier.
func (*SequencedProvider) Name() string {
	return SequencedProviderName
}

// CallCount returns the number of calls made.
func (p *SequencedProvider) CallCount() int {
	return int(p.index.Load())
}

// Reset resets the call counter.
func (p *SequencedProvider) Reset() {
	p.index.Store(0)
}

// FailingProvider fails a specified number of times before succeeding.
type FailingProvider struct {
	failCount    int
	currentCount atomic.Int64
	successResp  string
	failError    string
}

// NewFailingProvider creates a provider that fails failCount times then succeeds.
func NewFailingProvider(failCount int) *FailingProvider {
	return &FailingProvider{
		failCount:   failCount,
		successResp: `{"emotion": "Neutral", "confidence": 0.5}`,
		failError:   "simulated provider failure",
	}
}

// WithSuccessResponse sets the response returned after failures are exhausted.
func (p *FailingProvider) WithSuccessResponse(response string) *FailingProvider {
	p.successResp = response
	return p
}

// WithFailError sets the error message for failures.
func (p *FailingProvider) WithFailError(errMsg string) *FailingProvider {
	p.failError = errMsg
	return p
}

// Call fails until failCount is reached, then succeeds.
func (p *FailingProvider) Call(_ context.Context, _ *emote.Request) (*emote.ProviderResponse, error) {
	count := p.currentCount.Add(1)
	if int(count) <= p.failCount {
		return nil, fmt.Errorf("%s (attempt %d/%d)", p.failError, count, p.failCount)
	}
	return &emote.ProviderResponse{Content: p.successResp, Usage: usage()}, nil
}

// Name returns the provider identifier.
func (*FailingProvider) Name() string {
	return FailingProviderName
}

// CallCount returns the number of calls made.
func (p *FailingProvider) CallCount() int {
	return int(p.currentCount.Load())
}

// Reset resets the call counter.
func (p *FailingProvider) Reset() {
	p.currentCount.Store(0)
}

// RecordedCall represents a single call to a provider.
type RecordedCall struct {
	Prompt      string
	Schema      *emote.Schema
	Temperature float32
}

// CallRecorder wraps a provider and records all calls made to it.
type CallRecorder struct {
	provider emote.Provider
	calls    []RecordedCall
	mu       sync.Mutex
}

// NewCallRecorder wraps a provider with call recording.
func NewCallRecorder(provider emote.Provider) *CallRecorder {
	return &CallRecorder{
		provider: provider,
		calls:    make([]RecordedCall, 0),
	}
}

// Call delegates to the wrapped provider and records the call.
func (r *CallRecorder) Call(ctx context.Context, request *emote.Request) (*emote.ProviderResponse, error) {
	r.mu.Lock()
	r.calls = append(r.calls, RecordedCall{
		Prompt:      request.Prompt,
		Schema:      request.Schema,
		Temperature: request.Temperature,
	})
	r.mu.Unlock()

	return r.provider.Call(ctx, request)
}

// Name returns the wrapped provider's name.
func (r *CallRecorder) Name() string {
	return r.provider.Name()
}

// Calls returns a copy of all recorded calls.
func (r *CallRecorder) Calls() []RecordedCall {
	r.mu.Lock()
	defer r.mu.Unlock()

	calls := make([]RecordedCall, len(r.calls))
	copy(calls, r.calls)
	return calls
}

// CallCount returns the number of calls recorded.
func (r *CallRecorder) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// LastCall returns the most recent call, or nil if no calls made.
func (r *CallRecorder) LastCall() *RecordedCall {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.calls) == 0 {
		return nil
	}
	call := r.calls[len(r.calls)-1]
	return &call
}

// Reset clears all recorded calls.
func (r *CallRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = make([]RecordedCall, 0)
}

// LatencyProvider wraps a provider and adds artificial latency.
type LatencyProvider struct {
	provider emote.Provider
	delay    time.Duration
}

// NewLatencyProvider wraps a provider with artificial delay.
// The delay is applied before each provider call and respects context cancellation.
func NewLatencyProvider(provider emote.Provider, delay time.Duration) *LatencyProvider {
	return &LatencyProvider{
		provider: provider,
		delay:    delay,
	}
}

// Call adds latency then delegates to the wrapped provider.
func (p *LatencyProvider) Call(ctx context.Context, request *emote.Request) (*emote.ProviderResponse, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.provider.Call(ctx, request)
}

// Name returns the wrapped provider's name.
func (p *LatencyProvider) Name() string {
	return p.provider.Name()
}

// UsageAccumulator tracks total token usage across multiple calls.
type UsageAccumulator struct {
	promptTokens     atomic.Int64
	completionTokens atomic.Int64
	totalTokens      atomic.Int64
	callCount        atomic.Int64
}

// NewUsageAccumulator creates a new usage accumulator.
func NewUsageAccumulator() *UsageAccumulator {
	return &UsageAccumulator{}
}

// AddUsage accumulates usage directly. nil is ignored.
func (a *UsageAccumulator) AddUsage(usage *emote.TokenUsage) {
	if usage != nil {
		a.promptTokens.Add(int64(usage.Prompt))
		a.completionTokens.Add(int64(usage.Completion))
		a.totalTokens.Add(int64(usage.Total))
		a.callCount.Add(1)
	}
}

// PromptTokens returns total prompt tokens.
func (a *UsageAccumulator) PromptTokens() int {
	return int(a.promptTokens.Load())
}

// CompletionTokens returns total completion tokens.
func (a *UsageAccumulator) CompletionTokens() int {
	return int(a.completionTokens.Load())
}

// TotalTokens returns total tokens.
func (a *UsageAccumulator) TotalTokens() int {
	return int(a.totalTokens.Load())
}

// CallCount returns number of calls accumulated.
func (a *UsageAccumulator) CallCount() int {
	return int(a.callCount.Load())
}

// Reset clears all accumulated values.
func (a *UsageAccumulator) Reset() {
	a.promptTokens.Store(0)
	a.completionTokens.Store(0)
	a.totalTokens.Store(0)
	a.callCount.Store(0)
}
