package emote

import "github.com/zoobzio/capitan"

// Signals for hook events.
const (
	RequestStarted        = capitan.Signal("emote.request.started")
	RequestCompleted      = capitan.Signal("emote.request.completed")
	RequestFailed         = capitan.Signal("emote.request.failed")
	ResponseFailed        = capitan.Signal("emote.response.failed")
	ProviderCallStarted   = capitan.Signal("emote.provider.call.started")
	ProviderCallCompleted = capitan.Signal("emote.provider.call.completed")
	ProviderCallFailed    = capitan.Signal("emote.provider.call.failed")
)

// Keys for hook event fields.
var (
	// Request identification.
	RequestIDKey   = capitan.NewStringKey("emote.request.id")
	TemperatureKey = capitan.NewFloat64Key("emote.temperature")
	InputKey       = capitan.NewStringKey("emote.input")

	// Result data.
	EmotionKey    = capitan.NewStringKey("emote.emotion")
	ConfidenceKey = capitan.NewFloat64Key("emote.confidence")
	ResponseKey   = capitan.NewStringKey("emote.response")

	// Error information.
	ErrorKey     = capitan.NewStringKey("emote.error")
	ErrorKindKey = capitan.NewStringKey("emote.error.kind")

	// Provider information.
	ProviderKey = capitan.NewStringKey("emote.provider")
	ModelKey    = capitan.NewStringKey("emote.model")

	// Provider metrics.
	PromptTokensKey     = capitan.NewIntKey("emote.tokens.prompt")
	CompletionTokensKey = capitan.NewIntKey("emote.tokens.completion")
	TotalTokensKey      = capitan.NewIntKey("emote.tokens.total")
	DurationMsKey       = capitan.NewIntKey("emote.duration.ms")

	// HTTP/API metadata.
	HTTPStatusCodeKey       = capitan.NewIntKey("emote.http.status.code")
	ResponseFinishReasonKey = capitan.NewStringKey("emote.response.finish.reason")
)
