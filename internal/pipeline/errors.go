package pipeline

import (
	"errors"
	"fmt"

	"github.com/leonardotrapani/hyprcolor/internal/recording"
)

var ErrEmptyTranscript = errors.New("empty transcript")

// Kind classifies a failed session for the user facing notification.
type Kind string

const (
	PermissionDenied Kind = "permission_denied"
	RecognitionError Kind = "recognition_error"
	EmptyTranscript  Kind = "empty_transcript"
)

// Error is a session failure reported on the error channel.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// classify maps a stage error to its Kind. Anything that is not a denied
// microphone or a blank transcript is a recognition error.
func classify(err error) *Error {
	kind := RecognitionError
	switch {
	case errors.Is(err, recording.ErrMicrophoneUnavailable):
		kind = PermissionDenied
	case errors.Is(err, ErrEmptyTranscript):
		kind = EmptyTranscript
	}
	return &Error{Kind: kind, Err: err}
}
