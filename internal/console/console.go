// Package console is the interactive terminal front-end.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/zoobzio/emote"
	"github.com/zoobzio/emote/internal/display"
	"github.com/zoobzio/emote/internal/state"
)

// ErrBusy is returned when a classification is already running.
var ErrBusy = errors.New("analysis already in progress")

// Classifier is satisfied by *emote.Analyzer.
type Classifier interface {
	Analyze(ctx context.Context, text string) (emote.AnalysisResult, error)
}

// Console reads text from the user and prints the classified emotion.
type Console struct {
	classifier Classifier
	state      *state.State
	out        io.Writer
	color      bool
	prompt     string
}

// New creates a console writing to out.
func New(classifier Classifier, st *state.State, out io.Writer, color bool) *Console {
	if st == nil {
		st = state.New()
	}
	return &Console{
		classifier: classifier,
		state:      st,
		out:        out,
		color:      color,
		prompt:     "> ",
	}
}

// Run reads lines from in until EOF or ctx is cancelled, classifying each one.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(c.out, "How are you feeling? Type some text and press Enter (Ctrl-D to quit).")

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(c.out, c.prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.out)
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if err := c.Submit(ctx, line); err != nil && !errors.Is(err, emote.ErrBlankInput) {
				slog.Debug("analysis failed", "error", err)
			}
		}
	}
}

// Submit classifies one piece of text and prints the outcome.
// Blank text prints a hint and makes no call.
func (c *Console) Submit(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		display.RenderError(c.out, emote.MessageBlankInput, false)
		return emote.ErrBlankInput
	}

	if !c.state.Begin() {
		display.RenderError(c.out, "An analysis is already running.", c.color)
		return ErrBusy
	}

	fmt.Fprintln(c.out, "  Analyzing...")
	result, err := c.state.Run(func() (emote.AnalysisResult, error) {
		return c.classifier.Analyze(ctx, text)
	})

	if err != nil {
		display.RenderError(c.out, emote.UserMessage(err), c.color)
		return err
	}
	return display.Render(c.out, result, c.color)
}
