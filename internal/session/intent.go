package session

import (
	"time"

	"github.com/verte-zerg/ladder/internal/model"
)

// Intent is a user action the controller can apply.
type Intent interface {
	intent()
}

// SelectCategory switches to a category and draws a question from it.
type SelectCategory struct {
	Name string
}

// SetInput replaces the current answer text.
type SetInput struct {
	Text string
}

// Submit checks the current input against the answer.
type Submit struct{}

// Reload discards unsaved progress and rereads the progress file.
type Reload struct{}

// Review returns every completed word to the learn pool.
type Review struct{}

// Save writes progress to the repository.
type Save struct{}

// ToggleHint shows or hides the answer.
type ToggleHint struct{}

// SetLevel changes the difficulty level.
type SetLevel struct {
	Level model.Level
}

// Speak replays the audio cue for the current question.
type Speak struct{}

func (SelectCategory) intent() {}
func (SetInput) intent()       {}
func (Submit) intent()         {}
func (Reload) intent()         {}
func (Review) intent()         {}
func (Save) intent()           {}
func (ToggleHint) intent()     {}
func (SetLevel) intent()       {}
func (Speak) intent()          {}

// NoticeKind separates success toasts from error toasts.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is a transient message for the notification layer.
type Notice struct {
	Kind     NoticeKind
	Text     string
	Duration time.Duration
}
