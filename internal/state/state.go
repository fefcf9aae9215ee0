// Package state tracks the single in-flight classification and its outcome.
package state

import (
	"errors"
	"sync"

	"github.com/zoobzio/emote"
)

// Snapshot is a point-in-time copy of State.
type Snapshot struct {
	Busy   bool
	Result *emote.AnalysisResult
	Error  string // user-facing message, empty on success
}

// ErrInterrupted is recorded when a classification ends without returning.
var ErrInterrupted = errors.New("analysis interrupted")

// State allows at most one classification at a time and keeps the latest outcome.
type State struct {
	mu     sync.Mutex
	busy   bool
	result *emote.AnalysisResult
	errMsg string
}

// New returns an idle State with no result.
func New() *State {
	return &State{}
}

// Begin marks a classification as started and clears the previous outcome.
// It returns false, changing nothing, if one is already running.
func (s *State) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return false
	}
	s.busy = true
	s.result = nil
	s.errMsg = ""
	return true
}

// Finish records the outcome of the running classification and clears busy.
// On error the result slot stays empty.
func (s *State) Finish(result emote.AnalysisResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.busy = false
	if err != nil {
		s.result = nil
		s.errMsg = emote.UserMessage(err)
		return
	}
	s.result = &result
	s.errMsg = ""
}

// Run calls fn as the running classification and records its outcome.
// Busy is cleared even if fn panics; the panic is recorded as ErrInterrupted and
// then propagates. Callers must have won Begin.
func (s *State) Run(fn func() (emote.AnalysisResult, error)) (emote.AnalysisResult, error) {
	var result emote.AnalysisResult
	err := ErrInterrupted
	defer func() { s.Finish(result, err) }()

	result, err = fn()
	return result, err
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Busy: s.busy, Error: s.errMsg}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}
