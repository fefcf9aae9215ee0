package emote

// Emotion is one of the seven fixed emotion labels.
type Emotion string

// Emotion labels. The string values are sent to the model verbatim.
const (
	Joy      Emotion = "Joy"
	Sadness  Emotion = "Sadness"
	Anger    Emotion = "Anger"
	Fear     Emotion = "Fear"
	Surprise Emotion = "Surprise"
	Disgust  Emotion = "Disgust"
	Neutral  Emotion = "Neutral"
)

var emotions = []Emotion{Joy, Sadness, Anger, Fear, Surprise, Disgust, Neutral}

// Emotions returns every label in canonical order.
func Emotions() []Emotion {
	out := make([]Emotion, len(emotions))
	copy(out, emotions)
	return out
}

// EmotionNames returns the labels as plain strings, in canonical order.
func EmotionNames() []string {
	out := make([]string, len(emotions))
	for i, e := range emotions {
		out[i] = string(e)
	}
	return out
}

// Valid reports whether e is one of the seven labels.
// Matching is exact: "joy" is not a label.
func (e Emotion) Valid() bool {
	for _, known := range emotions {
		if e == known {
			return true
		}
	}
	return false
}

func (e Emotion) String() string {
	return string(e)
}

// ParseEmotion returns the label named s.
func ParseEmotion(s string) (Emotion, bool) {
	e := Emotion(s)
	if !e.Valid() {
		return "", false
	}
	return e, true
}

// Style is the presentation attached to a label.
type Style struct {
	Emoji string `json:"emoji"`
	Color string `json:"color"` // Color name, e.g. "yellow"
}

var styles = map[Emotion]Style{
	Joy:      {Emoji: "😄", Color: "yellow"},
	Sadness:  {Emoji: "😢", Color: "blue"},
	Anger:    {Emoji: "😡", Color: "red"},
	Fear:     {Emoji: "😨", Color: "purple"},
	Surprise: {Emoji: "😮", Color: "pink"},
	Disgust:  {Emoji: "🤢", Color: "green"},
	Neutral:  {Emoji: "😐", Color: "gray"},
}

// StyleFor returns the style for e. Unknown labels get the Neutral style.
func StyleFor(e Emotion) Style {
	if s, ok := styles[e]; ok {
		return s
	}
	return styles[Neutral]
}
