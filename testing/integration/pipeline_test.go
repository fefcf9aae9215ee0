package integration

import (
	"context"
	"testing"
	"time"

	"github.com/zoobzio/emote"
	emotet "github.com/zoobzio/emote/testing"
	"github.com/zoobzio/pipz"
)

func TestPipeline_NoRetryOnFailure(t *testing.T) {
	// Would succeed on the second attempt, but only one attempt is ever made
	provider := emotet.NewFailingProvider(1).
		WithSuccessResponse(emotet.NewResponseBuilder().
			WithEmotion(emote.Joy).
			WithConfidence(0.9).
			Build())

	analyzer := emote.NewAnalyzer(provider, emote.WithTimeout(time.Second))

	_, err := analyzer.Analyze(context.Background(), "input")
	if !emote.IsUnreachable(err) {
		t.Fatalf("expected unreachable error, got %v", err)
	}
	if provider.CallCount() != 1 {
		t.Errorf("expected exactly 1 call, got %d", provider.CallCount())
	}

	result, err := analyzer.Analyze(context.Background(), "input")
	if err != nil {
		t.Fatalf("expected the next request to succeed, got %v", err)
	}
	if result.Emotion != emote.Joy {
		t.Errorf("expected Joy, got %s", result.Emotion)
	}
}

func TestPipeline_Timeout(t *testing.T) {
	slowProvider := emotet.NewLatencyProvider(
		emotet.NewSequencedProvider(
			emotet.NewResponseBuilder().WithEmotion(emote.Sadness).WithConfidence(0.6).Build(),
		),
		500*time.Millisecond,
	)

	analyzer := emote.NewAnalyzer(slowProvider, emote.WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := analyzer.Analyze(context.Background(), "input")
	elapsed := time.Since(start)

	if !emote.IsUnreachable(err) {
		t.Fatalf("expected timeout to surface as unreachable, got %v", err)
	}
	if elapsed > 300*time.Millisecond {
		t.Errorf("timeout should have cut the call short, took %v", elapsed)
	}
}

func TestPipeline_CallerCancellation(t *testing.T) {
	slowProvider := emotet.NewLatencyProvider(emotet.NewSequencedProvider(`{}`), time.Second)
	analyzer := emote.NewAnalyzer(slowProvider)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := analyzer.Analyze(ctx, "input")
	if !emote.IsUnreachable(err) {
		t.Fatalf("expected unreachable error, got %v", err)
	}
	if slowProvider.Name() != emotet.SequencedProviderName {
		t.Errorf("latency wrapper should keep the inner name, got %q", slowProvider.Name())
	}
}

func TestPipeline_CustomStage(t *testing.T) {
	acc := emotet.NewUsageAccumulator()
	accumulate := func(next pipz.Chainable[*emote.AnalysisRequest]) pipz.Chainable[*emote.AnalysisRequest] {
		return pipz.Apply("usage", func(ctx context.Context, req *emote.AnalysisRequest) (*emote.AnalysisRequest, error) {
			out, err := next.Process(ctx, req)
			if err == nil {
				acc.AddUsage(out.Usage)
			}
			return out, err
		})
	}

	provider := emotet.NewSequencedProvider(
		emotet.NewResponseBuilder().WithEmotion(emote.Anger).WithConfidence(0.8).Build(),
	)
	analyzer := emote.NewAnalyzer(provider, accumulate)

	for i := 0; i < 3; i++ {
		if _, err := analyzer.Analyze(context.Background(), "input"); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}

	if acc.CallCount() != 3 || acc.TotalTokens() != 450 {
		t.Errorf("expected 3 calls / 450 tokens, got %d / %d", acc.CallCount(), acc.TotalTokens())
	}
}

func TestPipeline_RequestShape(t *testing.T) {
	recorder := emotet.NewCallRecorder(emotet.NewSequencedProvider(
		emotet.NewResponseBuilder().WithEmotion(emote.Neutral).WithConfidence(0.5).Build(),
	))
	analyzer := emote.NewAnalyzer(recorder).WithTemperature(0.1)

	if _, err := analyzer.Analyze(context.Background(), "The bus is late."); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	call := recorder.LastCall()
	if call == nil {
		t.Fatal("expected a recorded call")
	}
	if call.Temperature != 0.1 {
		t.Errorf("expected temperature 0.1, got %v", call.Temperature)
	}
	if call.Schema != emote.ResponseSchema() {
		t.Error("expected the response schema on every call")
	}
	for _, label := range emote.EmotionNames() {
		if !containsLine(call.Prompt, label) {
			t.Errorf("prompt should list %s", label)
		}
	}
}
