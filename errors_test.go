package emote

import (
	"errors"
	"fmt"
	"testing"
)

func TestError(t *testing.T) {
	cause := errors.New("connection refused")

	t.Run("simple", func(t *testing.T) {
		err := unreachable(cause)
		if !errors.Is(err, cause) {
			t.Error("Error should unwrap to its cause")
		}
		if err.Error() != "service_unreachable: connection refused" {
			t.Errorf("Unexpected message %q", err.Error())
		}
	})

	t.Run("reliability", func(t *testing.T) {
		wrapped := fmt.Errorf("submit: %w", malformed(cause))
		if !IsMalformed(wrapped) {
			t.Error("IsMalformed should see through wrapping")
		}
		if IsUnreachable(wrapped) {
			t.Error("Malformed is not unreachable")
		}
		if UserMessage(wrapped) != MessageMalformedResponse {
			t.Errorf("Unexpected user message %q", UserMessage(wrapped))
		}
	})

	t.Run("chaining", func(t *testing.T) {
		if UserMessage(ErrBlankInput) != MessageBlankInput {
			t.Error("Blank input should ask for text")
		}
		if UserMessage(errors.New("anything")) != MessageServiceUnreachable {
			t.Error("Unknown errors should read as unreachable")
		}
		if IsMalformed(nil) || IsUnreachable(nil) {
			t.Error("nil is neither kind")
		}
	})
}
