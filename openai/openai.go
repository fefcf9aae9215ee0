// Package openai implements the emote Provider for the OpenAI Responses API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/emote"
)

// Defaults used when Config leaves a field empty.
const (
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 30 * time.Second
)

// Provider implements the emote Provider interface for OpenAI.
type Provider struct {
	client *oai.Client
	model  string
	name   string
}

// Config holds configuration for the OpenAI provider.
type Config struct {
	APIKey  string
	Model   string        // e.g. "gpt-4o-mini", "gpt-4.1"
	BaseURL string        // Optional, defaults to the SDK's endpoint
	Timeout time.Duration // Optional, defaults to 30s
}

// New creates a new OpenAI provider. The SDK's automatic retries are disabled.
func New(config Config) *Provider {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(config.Timeout),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	client := oai.NewClient(opts...)
	return &Provider{
		client: &client,
		model:  config.Model,
		name:   "openai",
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

// Call sends one Responses request with a strict JSON schema text format.
func (p *Provider) Call(ctx context.Context, request *emote.Request) (*emote.ProviderResponse, error) {
	startTime := time.Now()

	capitan.Info(ctx, emote.ProviderCallStarted,
		emote.ProviderKey.Field(p.name),
		emote.ModelKey.Field(p.model),
	)

	params := responses.ResponseNewParams{
		Model:       p.model,
		Temperature: oai.Float(float64(request.Temperature)),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(request.Prompt, responses.EasyInputMessageRoleUser),
			},
		},
	}
	if request.Schema != nil {
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "EmotionAnalysis",
					Schema:      StrictSchema(request.Schema),
					Strict:      oai.Bool(true),
					Description: oai.String("Dominant emotion with confidence"),
					Type:        "json_schema",
				},
			},
		}
	}

	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		status := 0
		var apiErr *oai.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		switch {
		case status == http.StatusTooManyRequests:
			err = fmt.Errorf("rate limit exceeded: %w", err)
		case status == 0 && undecodable(err):
			status = http.StatusOK
			err = fmt.Errorf("failed to parse response envelope: %w: %w", emote.ErrMalformedPayload, err)
		default:
			err = fmt.Errorf("openai request failed: %w", err)
		}
		p.failed(ctx, startTime, status, err)
		return nil, err
	}

	text := resp.OutputText()
	if text == "" {
		err := fmt.Errorf("no text content in response (status %q)", resp.Status)
		p.failed(ctx, startTime, http.StatusOK, err)
		return nil, err
	}

	usage := emote.TokenUsage{
		Prompt:     int(resp.Usage.InputTokens),
		Completion: int(resp.Usage.OutputTokens),
		Total:      int(resp.Usage.TotalTokens),
	}

	capitan.Info(ctx, emote.ProviderCallCompleted,
		emote.ProviderKey.Field(p.name),
		emote.ModelKey.Field(p.model),
		emote.PromptTokensKey.Field(usage.Prompt),
		emote.CompletionTokensKey.Field(usage.Completion),
		emote.TotalTokensKey.Field(usage.Total),
		emote.DurationMsKey.Field(int(time.Since(startTime).Milliseconds())),
	)

	return &emote.ProviderResponse{
		Content: text,
		Usage:   usage,
	}, nil
}

func (p *Provider) failed(ctx context.Context, startTime time.Time, status int, err error) {
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
}

// StrictSchema converts a contract into the JSON Schema map OpenAI strict mode accepts:
// every object closes additionalProperties and lists all properties as required.
func StrictSchema(s *emote.Schema) map[string]interface{} {
	out := map[string]interface{}{
		"type": s.Type,
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = append([]string(nil), s.Enum...)
	}
	if s.Type == "object" {
		properties := make(map[string]interface{}, len(s.Properties))
		for name, prop := range s.Properties {
			properties[name] = StrictSchema(prop)
		}
		out["properties"] = properties
		out["required"] = s.PropertyNames()
		out["additionalProperties"] = false
	}
	return out
}

// undecodable reports whether err means the service answered but the SDK could not
// decode the body.
func undecodable(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "error parsing response json") || strings.Contains(msg, "that is not 'application/json'")
}
