// Package logging configures slog and routes analyzer hook events into it.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/emote"
)

// InitLogger installs a tint handler at level as the default logger.
func InitLogger(level slog.Level) *slog.Logger {
	return InitLoggerTo(os.Stdout, level, false)
}

// InitLoggerTo is InitLogger with an explicit writer.
func InitLoggerTo(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level <= slog.LevelDebug,
		NoColor:    noColor,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ObserveHooks forwards every emote hook event to logger and returns a func that stops it.
// Failure signals log at error level, provider traffic at debug, the rest at info.
func ObserveHooks(logger *slog.Logger) func() {
	if logger == nil {
		logger = slog.Default()
	}
	observer := capitan.Observe(func(ctx context.Context, e *capitan.Event) {
		signal := e.Signal()
		logger.Log(ctx, levelFor(signal), string(signal), attrs(e)...)
	})
	return func() { observer.Close() }
}

func levelFor(signal capitan.Signal) slog.Level {
	switch signal {
	case emote.RequestFailed, emote.ResponseFailed, emote.ProviderCallFailed:
		return slog.LevelError
	case emote.ProviderCallStarted, emote.ProviderCallCompleted:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func attrs(e *capitan.Event) []any {
	var out []any
	str := func(name string, from func(*capitan.Event) (string, bool)) {
		if v, ok := from(e); ok {
			out = append(out, name, v)
		}
	}
	num := func(name string, from func(*capitan.Event) (float64, bool)) {
		if v, ok := from(e); ok {
			out = append(out, name, v)
		}
	}
	count := func(name string, from func(*capitan.Event) (int, bool)) {
		if v, ok := from(e); ok {
			out = append(out, name, v)
		}
	}

	str("request_id", emote.RequestIDKey.From)
	str("provider", emote.ProviderKey.From)
	str("model", emote.ModelKey.From)
	str("emotion", emote.EmotionKey.From)
	num("confidence", emote.ConfidenceKey.From)
	num("temperature", emote.TemperatureKey.From)
	count("status", emote.HTTPStatusCodeKey.From)
	count("duration_ms", emote.DurationMsKey.From)
	count("tokens", emote.TotalTokensKey.From)
	str("finish_reason", emote.ResponseFinishReasonKey.From)
	str("kind", emote.ErrorKindKey.From)
	str("error", emote.ErrorKey.From)

	return out
}
