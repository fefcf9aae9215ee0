package emote

import (
	"fmt"
	"math"
)

// AnalysisResult is the validated outcome of one classification request.
type AnalysisResult struct {
	Emotion    Emotion `json:"emotion" desc:"The dominant emotion detected in the text."`
	Confidence float64 `json:"confidence" desc:"A confidence score between 0.0 and 1.0 for the detected emotion."`
}

// Validate checks that the label is known and the confidence lies in [0, 1].
func (r AnalysisResult) Validate() error {
	if !r.Emotion.Valid() {
		return fmt.Errorf("emotion %q is not a known label", string(r.Emotion))
	}
	if math.IsNaN(r.Confidence) || r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence must be 0-1, got %f", r.Confidence)
	}
	return nil
}

// Percent returns the confidence as a whole percentage, rounded half away from zero.
func (r AnalysisResult) Percent() int {
	return int(math.Round(r.Confidence * 100))
}

// Style returns the display style of the result's label.
func (r AnalysisResult) Style() Style {
	return StyleFor(r.Emotion)
}
