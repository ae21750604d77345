package recording

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrMicrophoneUnavailable means audio capture is not permitted or not
// possible on this session.
var ErrMicrophoneUnavailable = errors.New("microphone unavailable")

// Gate decides whether the microphone may be used before a session starts.
type Gate interface {
	CheckMicrophone(ctx context.Context) error
}

// PipeWireGate requires pw-record on PATH and a reachable PipeWire server.
type PipeWireGate struct{}

func (PipeWireGate) CheckMicrophone(ctx context.Context) error {
	if _, err := exec.LookPath("pw-record"); err != nil {
		return fmt.Errorf("%w: pw-record not found (install pipewire-tools): %v", ErrMicrophoneUnavailable, err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := exec.CommandContext(checkCtx, "pw-cli", "info", "0").Run(); err != nil {
		return fmt.Errorf("%w: PipeWire not running or accessible: %v", ErrMicrophoneUnavailable, err)
	}
	return nil
}

// AllowAll is a Gate that always grants access.
type AllowAll struct{}

func (AllowAll) CheckMicrophone(context.Context) error { return nil }
