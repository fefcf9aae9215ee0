package emote

import (
	"errors"
	"fmt"
)

// Kind classifies a failed analysis for the user.
type Kind int

const (
	// KindServiceUnreachable covers network, authentication, quota and any other
	// failure that left us without a model payload.
	KindServiceUnreachable Kind = iota
	// KindMalformedResponse means the model answered but the payload was not
	// parseable JSON or did not match the response schema.
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "service_unreachable"
	}
}

// User-facing messages per kind.
const (
	MessageMalformedResponse  = "Failed to get a valid analysis from the AI. Please try rephrasing your text."
	MessageServiceUnreachable = "Could not connect to the AI service. Please check your connection and API key."
	MessageBlankInput         = "Please enter some text to analyze."
)

// ErrBlankInput is returned when the text to analyze is empty or whitespace.
// No outbound call is made.
var ErrBlankInput = errors.New("text to analyze is blank")

// ErrMalformedPayload is wrapped by providers when the service answered but its
// body could not be decoded. Analyze reports it as KindMalformedResponse.
var ErrMalformedPayload = errors.New("malformed response payload")

// Error is a failed analysis, carrying its kind and the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage returns the text shown to the user for this failure.
func (e *Error) UserMessage() string {
	if e.Kind == KindMalformedResponse {
		return MessageMalformedResponse
	}
	return MessageServiceUnreachable
}

func malformed(err error) *Error {
	return &Error{Kind: KindMalformedResponse, Err: err}
}

func unreachable(err error) *Error {
	return &Error{Kind: KindServiceUnreachable, Err: err}
}

// IsMalformed reports whether err is a malformed-response failure.
func IsMalformed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindMalformedResponse
}

// IsUnreachable reports whether err is a service-unreachable failure.
func IsUnreachable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindServiceUnreachable
}

// UserMessage returns the user-facing text for any error returned by Analyze.
// Errors outside the taxonomy are reported as unreachable.
func UserMessage(err error) string {
	if errors.Is(err, ErrBlankInput) {
		return MessageBlankInput
	}
	var e *Error
	if errors.As(err, &e) {
		return e.UserMessage()
	}
	return MessageServiceUnreachable
}
