package display

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/zoobzio/emote"
)

func TestNewCard(t *testing.T) {
	card := NewCard(emote.AnalysisResult{Emotion: emote.Joy, Confidence: 0.82})
	if card.Emotion != emote.Joy || card.Percent != 82 {
		t.Errorf("Unexpected card %+v", card)
	}
	if card.Emoji != "😄" || card.Color != "yellow" {
		t.Errorf("Unexpected style %+v", card)
	}

	for _, e := range emote.Emotions() {
		card := NewCard(emote.AnalysisResult{Emotion: e, Confidence: 0.5})
		if _, ok := ansiColors[card.Color]; !ok {
			t.Errorf("%s: color %q has no ANSI code", e, card.Color)
		}
	}
}

func TestBar(t *testing.T) {
	cases := map[int]int{0: 0, 2: 0, 5: 1, 50: 10, 82: 16, 100: 20, -3: 0, 140: 20}
	for percent, filled := range cases {
		bar := Bar(percent)
		if n := utf8.RuneCountInString(bar); n != BarWidth {
			t.Errorf("%d: bar width %d", percent, n)
		}
		if got := strings.Count(bar, "█"); got != filled {
			t.Errorf("%d: expected %d filled cells, got %d", percent, filled, got)
		}
	}
}

func TestRender(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Render(&buf, emote.AnalysisResult{Emotion: emote.Joy, Confidence: 0.82}, false); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"😄", "Joy", "82%"} {
			if !strings.Contains(out, want) {
				t.Errorf("Expected %q in %q", want, out)
			}
		}
		if strings.Contains(out, "\x1b[") {
			t.Error("Plain render should have no ANSI escapes")
		}
	})

	t.Run("reliability", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Render(&buf, emote.AnalysisResult{Emotion: emote.Anger, Confidence: 0.9}, true); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !strings.Contains(buf.String(), ansiColors["red"]+"Anger") {
			t.Errorf("Expected red label, got %q", buf.String())
		}
	})

	t.Run("chaining", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RenderError(&buf, emote.MessageServiceUnreachable, false); err != nil {
			t.Fatalf("RenderError failed: %v", err)
		}
		if !strings.Contains(buf.String(), emote.MessageServiceUnreachable) {
			t.Errorf("Unexpected error output %q", buf.String())
		}
	})
}
