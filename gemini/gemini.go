// Package gemini implements the emote Provider for the Google Gemini API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/emote"
)

// Defaults used when Config leaves a field empty.
const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultTimeout = 30 * time.Second
)

// Provider implements the emote Provider interface for Google Gemini API.
type Provider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	name       string
}

// Config holds configuration for the Gemini provider.
type Config struct {
	APIKey  string
	Model   string        // e.g. "gemini-2.5-flash", "gemini-2.5-pro"
	BaseURL string        // Optional, defaults to DefaultBaseURL
	Timeout time.Duration // Optional, defaults to 30s
}

// New creates a new Gemini provider.
func New(config Config) *Provider {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Provider{
		apiKey:  config.APIKey,
		model:   config.Model,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		name:    "gemini",
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// Model returns the configured model name.
func (p *Provider) Model() string {
	return p.model
}

// Call sends one generateContent request and returns the model's JSON text.
func (p *Provider) Call(ctx context.Context, request *emote.Request) (*emote.ProviderResponse, error) {
	startTime := time.Now()

	capitan.Info(ctx, emote.ProviderCallStarted,
		emote.ProviderKey.Field(p.name),
		emote.ModelKey.Field(p.model),
	)

	requestBody := generateContentRequest{
		Contents: []content{
			{
				Role:  "user",
				Parts: []part{{Text: request.Prompt}},
			},
		},
		GenerationConfig: &generationConfig{
			Temperature:      request.Temperature,
			ResponseMIMEType: "application/json",
			ResponseSchema:   toGeminiSchema(request.Schema),
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, p.fail(ctx, startTime, 0, fmt.Errorf("failed to marshal request: %w", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, p.fail(ctx, startTime, 0, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, p.fail(ctx, startTime, 0, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, p.fail(ctx, startTime, resp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp errorResponse
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
			if resp.StatusCode == http.StatusTooManyRequests {
				return nil, p.fail(ctx, startTime, resp.StatusCode, fmt.Errorf("rate limit exceeded: %s", errorResp.Error.Message))
			}
			return nil, p.fail(ctx, startTime, resp.StatusCode, fmt.Errorf("gemini error (%d): %s", resp.StatusCode, errorResp.Error.Message))
		}
		return nil, p.fail(ctx, startTime, resp.StatusCode, fmt.Errorf("gemini error: status %d", resp.StatusCode))
	}

	var generateResp generateContentResponse
	if err := json.Unmarshal(body, &generateResp); err != nil {
		return nil, p.fail(ctx, startTime, resp.StatusCode, fmt.Errorf("failed to parse response envelope: %w: %w", emote.ErrMalformedPayload, err))
	}

	if len(generateResp.Candidates) == 0 {
		reason := "no candidates in response"
		if generateResp.PromptFeedback != nil && generateResp.PromptFeedback.BlockReason != "" {
			reason = "prompt blocked: " + generateResp.PromptFeedback.BlockReason
		}
		return nil, p.fail(ctx, startTime, resp.StatusCode, fmt.Errorf("%s", reason))
	}

	candidate := generateResp.Candidates[0]
	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return nil, p.fail(ctx, startTime, resp.StatusCode, fmt.Errorf("no text content in response (finish reason %q)", candidate.FinishReason))
	}

	duration := time.Since(startTime)
	usage := emote.TokenUsage{
		Prompt:     generateResp.UsageMetadata.PromptTokenCount,
		Completion: generateResp.UsageMetadata.CandidatesTokenCount,
		Total:      generateResp.UsageMetadata.TotalTokenCount,
	}

	fields := []capitan.Field{
		emote.ProviderKey.Field(p.name),
		emote.ModelKey.Field(p.model),
		emote.PromptTokensKey.Field(usage.Prompt),
		emote.CompletionTokensKey.Field(usage.Completion),
		emote.TotalTokensKey.Field(usage.Total),
		emote.DurationMsKey.Field(int(duration.Milliseconds())),
		emote.HTTPStatusCodeKey.Field(resp.StatusCode),
	}
	if candidate.FinishReason != "" {
		fields = append(fields, emote.ResponseFinishReasonKey.Field(candidate.FinishReason))
	}
	capitan.Info(ctx, emote.ProviderCallCompleted, fields...)

	return &emote.ProviderResponse{
		Content: text.String(),
		Usage:   usage,
	}, nil
}

// fail emits provider.call.failed and returns err.
func (p *Provider) fail(ctx context.Context, startTime time.Time, status int, err error) error {
	fields := []capitan.Field{
		emote.ProviderKey.Field(p.name),
		emote.ModelKey.Field(p.model),
		emote.DurationMsKey.Field(int(time.Since(startTime).Milliseconds())),
		emote.ErrorKey.Field(err.Error()),
	}
	if status != 0 {
		fields = append(fields, emote.HTTPStatusCodeKey.Field(status))
	}
	capitan.Error(ctx, emote.ProviderCallFailed, fields...)
	return err
}

// toGeminiSchema converts a JSON Schema contract into Gemini's OpenAPI subset,
// which spells types in upper case.
func toGeminiSchema(s *emote.Schema) *schema {
	if s == nil {
		return nil
	}
	out := &schema{
		Type:        strings.ToUpper(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGeminiSchema(prop)
		}
		out.PropertyOrdering = s.PropertyNames()
	}
	return out
}

// Request/Response types for Gemini API

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float32 `json:"temperature,omitempty"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type schema struct {
	Type             string             `json:"type"`
	Description      string             `json:"description,omitempty"`
	Enum             []string           `json:"enum,omitempty"`
	Properties       map[string]*schema `json:"properties,omitempty"`
	Required         []string           `json:"required,omitempty"`
	PropertyOrdering []string           `json:"propertyOrdering,omitempty"`
}

type generateContentResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  usageMetadata   `json:"usageMetadata"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
	Index        int     `json:"index"`
}

type promptFeedback struct {
	BlockReason string `json:"blockReason"`
}

type usageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
