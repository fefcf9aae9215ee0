package emote

import "testing"

func TestEmotions(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		labels := Emotions()
		if len(labels) != 7 {
			t.Fatalf("Expected 7 labels, got %d", len(labels))
		}
		want := []Emotion{Joy, Sadness, Anger, Fear, Surprise, Disgust, Neutral}
		for i, e := range want {
			if labels[i] != e {
				t.Errorf("Label %d: expected %s, got %s", i, e, labels[i])
			}
		}
	})

	t.Run("reliability", func(t *testing.T) {
		labels := Emotions()
		labels[0] = "Mutated"
		if Emotions()[0] != Joy {
			t.Error("Emotions must return a copy")
		}
	})
}

func TestParseEmotion(t *testing.T) {
	for _, e := range Emotions() {
		got, ok := ParseEmotion(string(e))
		if !ok || got != e {
			t.Errorf("ParseEmotion(%q) = %q, %v", e, got, ok)
		}
	}

	for _, bad := range []string{"", "joy", "JOY", " Joy", "Happiness", "Neutral\n"} {
		if _, ok := ParseEmotion(bad); ok {
			t.Errorf("ParseEmotion(%q) should fail", bad)
		}
	}
}

func TestStyleFor(t *testing.T) {
	tests := []struct {
		emotion Emotion
		emoji   string
		color   string
	}{
		{Joy, "😄", "yellow"},
		{Sadness, "😢", "blue"},
		{Anger, "😡", "red"},
		{Fear, "😨", "purple"},
		{Surprise, "😮", "pink"},
		{Disgust, "🤢", "green"},
		{Neutral, "😐", "gray"},
	}

	for _, tt := range tests {
		t.Run(string(tt.emotion), func(t *testing.T) {
			style := StyleFor(tt.emotion)
			if style.Emoji != tt.emoji || style.Color != tt.color {
				t.Errorf("StyleFor(%s) = %+v", tt.emotion, style)
			}
		})
	}

	t.Run("fallback", func(t *testing.T) {
		if StyleFor("Bewildered") != StyleFor(Neutral) {
			t.Error("Unknown labels should use the Neutral style")
		}
		if StyleFor("") != StyleFor(Neutral) {
			t.Error("Empty label should use the Neutral style")
		}
	})
}
