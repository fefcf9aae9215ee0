package emote

import (
	"context"
	"log/slog"
	"time"

	"github.com/zoobzio/pipz"
)

// Option modifies the analyzer pipeline.
// No option may retry: each Analyze call makes exactly one outbound request.
type Option func(pipz.Chainable[*AnalysisRequest]) pipz.Chainable[*AnalysisRequest]

// WithTimeout bounds the provider call.
// Operations exceeding this duration will be canceled and reported as unreachable.
func WithTimeout(duration time.Duration) Option {
	return func(pipeline pipz.Chainable[*AnalysisRequest]) pipz.Chainable[*AnalysisRequest] {
		return pipz.NewTimeout("timeout", pipeline, duration)
	}
}

// WithErrorHandler adds error handling to the pipeline.
// The handler observes failures; it cannot turn them into successes.
func WithErrorHandler(handler pipz.Chainable[*pipz.Error[*AnalysisRequest]]) Option {
	return func(pipeline pipz.Chainable[*AnalysisRequest]) pipz.Chainable[*AnalysisRequest] {
		return pipz.NewHandle("error-handler", pipeline, handler)
	}
}

// WithDebug logs the rendered prompt and the raw response at debug level.
func WithDebug(logger *slog.Logger) Option {
	if logger == nil {
		logger = slog.Default()
	}
	return func(pipeline pipz.Chainable[*AnalysisRequest]) pipz.Chainable[*AnalysisRequest] {
		return pipz.Apply("debug", func(ctx context.Context, req *AnalysisRequest) (*AnalysisRequest, error) {
			logger.DebugContext(ctx, "emote prompt",
				slog.String("request_id", req.RequestID),
				slog.String("prompt", req.Prompt.Render()),
			)

			processed, err := pipeline.Process(ctx, req)
			if err != nil {
				logger.DebugContext(ctx, "emote provider error",
					slog.String("request_id", req.RequestID),
					slog.Any("error", err),
				)
				return processed, err
			}

			logger.DebugContext(ctx, "emote raw response",
				slog.String("request_id", req.RequestID),
				slog.String("response", processed.Response),
			)
			return processed, nil
		})
	}
}
