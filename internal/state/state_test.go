package state

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/zoobzio/emote"
)

func TestState(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		s := New()
		if snap := s.Snapshot(); snap.Busy || snap.Result != nil || snap.Error != "" {
			t.Fatalf("Expected idle empty state, got %+v", snap)
		}

		if !s.Begin() {
			t.Fatal("Begin should succeed when idle")
		}
		if !s.Snapshot().Busy {
			t.Error("Expected busy after Begin")
		}

		s.Finish(emote.AnalysisResult{Emotion: emote.Joy, Confidence: 0.82}, nil)
		snap := s.Snapshot()
		if snap.Busy {
			t.Error("Expected idle after Finish")
		}
		if snap.Result == nil || snap.Result.Emotion != emote.Joy || snap.Result.Percent() != 82 {
			t.Errorf("Unexpected result %+v", snap.Result)
		}
	})

	t.Run("reliability", func(t *testing.T) {
		s := New()
		s.Begin()
		s.Finish(emote.AnalysisResult{Emotion: emote.Sadness, Confidence: 0.4}, nil)

		s.Begin()
		if snap := s.Snapshot(); snap.Result != nil {
			t.Error("Begin should clear the previous result")
		}
		s.Finish(emote.AnalysisResult{}, errors.New("dial tcp: refused"))

		snap := s.Snapshot()
		if snap.Result != nil {
			t.Error("A failure must not leave a result")
		}
		if snap.Error != emote.MessageServiceUnreachable {
			t.Errorf("Expected unreachable message, got %q", snap.Error)
		}

		s.Begin()
		if s.Snapshot().Error != "" {
			t.Error("Begin should clear the previous error")
		}
	})

	t.Run("chaining", func(t *testing.T) {
		s := New()
		s.Begin()
		s.Finish(emote.AnalysisResult{Emotion: emote.Anger, Confidence: 0.9}, nil)

		snap := s.Snapshot()
		snap.Result.Emotion = emote.Neutral
		if s.Snapshot().Result.Emotion != emote.Anger {
			t.Error("Snapshot must be a copy")
		}
	})
}

func TestBeginExclusive(t *testing.T) {
	s := New()
	var wins atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Begin() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Errorf("Expected exactly one Begin to win, got %d", wins.Load())
	}
	if s.Begin() {
		t.Error("Begin must fail until Finish")
	}
	s.Finish(emote.AnalysisResult{Emotion: emote.Neutral}, nil)
	if !s.Begin() {
		t.Error("Begin should succeed after Finish")
	}
}

func TestRun(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		s := New()
		s.Begin()

		result, err := s.Run(func() (emote.AnalysisResult, error) {
			return emote.AnalysisResult{Emotion: emote.Surprise, Confidence: 0.7}, nil
		})
		if err != nil || result.Emotion != emote.Surprise {
			t.Fatalf("Unexpected outcome %+v, %v", result, err)
		}
		snap := s.Snapshot()
		if snap.Busy || snap.Result == nil || snap.Result.Emotion != emote.Surprise {
			t.Errorf("Unexpected snapshot %+v", snap)
		}
	})

	t.Run("reliability", func(t *testing.T) {
		s := New()
		s.Begin()

		func() {
			defer func() {
				if recover() == nil {
					t.Error("Expected panic to propagate")
				}
			}()
			s.Run(func() (emote.AnalysisResult, error) {
				panic("classifier exploded")
			})
		}()

		snap := s.Snapshot()
		if snap.Busy {
			t.Error("Busy must clear after a panic")
		}
		if snap.Result != nil || snap.Error != emote.UserMessage(ErrInterrupted) {
			t.Errorf("Unexpected snapshot %+v", snap)
		}
		if !s.Begin() {
			t.Error("Begin should succeed after a panic")
		}
	})
}
