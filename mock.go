package emote

import (
	"context"
	"errors"
	"sync/atomic"
)

// MockProvider returns canned responses for testing.
// It records how many calls it received and the last request.
type MockProvider struct {
	name     string
	callback func(ctx context.Context, req *Request) (string, error)
	calls    atomic.Int64
	last     atomic.Pointer[Request]
}

// NewMockProvider creates a mock that always returns response.
func NewMockProvider(response string) *MockProvider {
	return &MockProvider{
		name: "mock-fixed",
		callback: func(context.Context, *Request) (string, error) {
			return response, nil
		},
	}
}

// NewMockProviderWithError creates a mock that always fails with message.
func NewMockProviderWithError(message string) *MockProvider {
	return &MockProvider{
		name: "mock-error",
		callback: func(context.Context, *Request) (string, error) {
			return "", errors.New(message)
		},
	}
}

// NewMockProviderWithCallback creates a mock that calls a function to generate responses.
func NewMockProviderWithCallback(callback func(ctx context.Context, req *Request) (string, error)) *MockProvider {
	return &MockProvider{
		name:     "mock-callback",
		callback: callback,
	}
}

// Name returns the provider identifier.
func (m *MockProvider) Name() string {
	return m.name
}

// Call returns the mock's response.
func (m *MockProvider) Call(ctx context.Context, req *Request) (*ProviderResponse, error) {
	m.calls.Add(1)
	m.last.Store(req)

	content, err := m.callback(ctx, req)
	if err != nil {
		return nil, err
	}
	return &ProviderResponse{
		Content: content,
		Usage:   TokenUsage{Prompt: 10, Completion: 5, Total: 15},
	}, nil
}

// Calls returns how many times Call was invoked.
func (m *MockProvider) Calls() int {
	return int(m.calls.Load())
}

// LastRequest returns the most recent request, or nil.
func (m *MockProvider) LastRequest() *Request {
	return m.last.Load()
}
