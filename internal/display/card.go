// Package display renders classification results for a terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/zoobzio/emote"
)

// BarWidth is the number of cells in the confidence bar.
const BarWidth = 20

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiFaint = "\x1b[2m"
)

var ansiColors = map[string]string{
	"yellow": "\x1b[93m",
	"blue":   "\x1b[94m",
	"red":    "\x1b[91m",
	"purple": "\x1b[95m",
	"pink":   "\x1b[35m",
	"green":  "\x1b[92m",
	"gray":   "\x1b[90m",
}

// Card is the presentation of one result. It is also the JSON body served over HTTP.
type Card struct {
	Emotion    emote.Emotion `json:"emotion"`
	Confidence float64       `json:"confidence"`
	Percent    int           `json:"percent"`
	Emoji      string        `json:"emoji"`
	Color      string        `json:"color"`
}

// NewCard builds the card for r.
func NewCard(r emote.AnalysisResult) Card {
	style := r.Style()
	return Card{
		Emotion:    r.Emotion,
		Confidence: r.Confidence,
		Percent:    r.Percent(),
		Emoji:      style.Emoji,
		Color:      style.Color,
	}
}

// Bar returns the confidence bar for percent, clamped to [0,100].
func Bar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := (percent*BarWidth + 50) / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", BarWidth-filled)
}

// Render writes the card for r to w. With color set the label and bar are ANSI-colored.
func Render(w io.Writer, r emote.AnalysisResult, color bool) error {
	card := NewCard(r)

	label := string(card.Emotion)
	bar := Bar(card.Percent)
	caption := "Confidence"
	if color {
		code := ansiColors[card.Color]
		label = ansiBold + code + label + ansiReset
		bar = code + bar + ansiReset
		caption = ansiFaint + caption + ansiReset
	}

	_, err := fmt.Fprintf(w, "\n  %s  %s\n  %s %s %d%%\n\n", card.Emoji, label, caption, bar, card.Percent)
	return err
}

// RenderError writes a user-facing error message to w.
func RenderError(w io.Writer, message string, color bool) error {
	if color {
		message = ansiColors["red"] + message + ansiReset
	}
	_, err := fmt.Fprintf(w, "  %s\n", message)
	return err
}
