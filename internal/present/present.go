// Package present shows the outcome of a capture session to the user.
package present

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/leonardotrapani/hyprcolor/internal/notify"
	"github.com/leonardotrapani/hyprcolor/internal/pipeline"
	"github.com/leonardotrapani/hyprcolor/internal/transcriber"
)

type Copier interface {
	Copy(ctx context.Context, text string) error
}

type Presenter struct {
	notifier  notify.Notifier
	clipboard Copier
}

// New returns a Presenter. A nil clipboard disables copying.
func New(n notify.Notifier, clipboard Copier) *Presenter {
	if n == nil {
		n = notify.Nop{}
	}
	return &Presenter{notifier: n, clipboard: clipboard}
}

// Result announces a resolved colour and copies it, or reports that none was
// found.
func (p *Presenter) Result(ctx context.Context, res pipeline.Result) {
	if !res.Found {
		p.notifier.Send(notify.MsgNoColor, "")
		return
	}

	if p.clipboard != nil {
		if err := p.clipboard.Copy(ctx, res.Hex); err != nil {
			zap.S().Warnf("Present: clipboard copy failed: %v", err)
		}
	}
	p.notifier.Send(notify.MsgColorDetected, res.Hex)
}

// Error reports a failed session with the message for its class.
func (p *Presenter) Error(err error) {
	var perr *pipeline.Error
	if !errors.As(err, &perr) {
		p.notifier.Send(notify.MsgRecognitionError, err.Error())
		return
	}

	switch perr.Kind {
	case pipeline.PermissionDenied:
		p.notifier.Send(notify.MsgPermissionDenied, "")
	case pipeline.EmptyTranscript:
		p.notifier.Send(notify.MsgEmptyTranscript, "")
	default:
		p.notifier.Send(notify.MsgRecognitionError, recognitionDetail(perr.Err))
	}
}

func recognitionDetail(err error) string {
	if be, ok := transcriber.AsBackendError(err); ok && be.Unauthorized() {
		return "clave de API rechazada por " + be.Provider
	}
	return err.Error()
}
