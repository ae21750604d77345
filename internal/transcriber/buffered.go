package transcriber

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/leonardotrapani/hyprcolor/internal/recording"
	"go.uber.org/zap"
)

const blankAudioToken = "[BLANK_AUDIO]"

// BufferedTranscriber collects all audio and transcribes when stopped.
type BufferedTranscriber struct {
	adapter BatchAdapter

	mu      sync.Mutex
	audio   []byte
	running bool
	wg      sync.WaitGroup

	text string
}

func NewBufferedTranscriber(adapter BatchAdapter) *BufferedTranscriber {
	return &BufferedTranscriber{adapter: adapter}
}

func (t *BufferedTranscriber) Start(ctx context.Context, frameCh <-chan recording.AudioFrame) (<-chan error, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return nil, fmt.Errorf("transcriber already running")
	}
	t.running = true
	t.audio = t.audio[:0]
	t.text = ""

	errCh := make(chan error, 1)
	t.wg.Add(1)
	go t.collect(ctx, frameCh, errCh)
	return errCh, nil
}

func (t *BufferedTranscriber) Stop(ctx context.Context) error {
	t.mu.Lock()
	running := t.running
	t.mu.Unlock()
	if !running {
		return nil
	}

	t.wg.Wait()

	t.mu.Lock()
	t.running = false
	audio := make([]byte, len(t.audio))
	copy(audio, t.audio)
	t.mu.Unlock()

	if len(audio) == 0 {
		zap.S().Infof("transcriber: no audio data to transcribe")
		return nil
	}

	zap.S().Infof("transcriber: transcribing %d bytes of audio", len(audio))
	text, err := t.adapter.Transcribe(ctx, audio)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, ok := AsBackendError(err); ok {
			return err
		}
		return backendError("", err)
	}

	t.mu.Lock()
	t.text = text
	t.mu.Unlock()

	zap.S().Infof("transcriber: transcription completed: %q", text)
	return nil
}

func (t *BufferedTranscriber) GetFinalTranscription() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text, nil
}

func (t *BufferedTranscriber) collect(ctx context.Context, frameCh <-chan recording.AudioFrame, errCh chan<- error) {
	defer func() {
		close(errCh)
		t.wg.Done()
	}()

	for {
		select {
		case <-ctx.Done():
			zap.S().Debugf("transcriber: stopping audio collection")
			return

		case frame, ok := <-frameCh:
			if !ok {
				zap.S().Debugf("transcriber: audio channel closed")
				return
			}
			t.mu.Lock()
			t.audio = append(t.audio, frame.Data...)
			t.mu.Unlock()
		}
	}
}

// IsBlank reports whether a transcript carries no speech. whisper emits
// [BLANK_AUDIO] for silence.
func IsBlank(transcript string) bool {
	trimmed := strings.TrimSpace(transcript)
	return trimmed == "" || strings.EqualFold(trimmed, blankAudioToken)
}
