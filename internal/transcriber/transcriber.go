package transcriber

import (
	"context"
	"fmt"

	"github.com/leonardotrapani/hyprcolor/internal/recording"
)

// Transcriber turns one recording session into text.
type Transcriber interface {
	Start(ctx context.Context, frameCh <-chan recording.AudioFrame) (<-chan error, error)
	// Stop waits for the frame channel to drain and transcribes what was
	// collected.
	Stop(ctx context.Context) error
	GetFinalTranscription() (string, error)
}

// BatchAdapter sends a complete recording to a speech-to-text backend.
type BatchAdapter interface {
	Transcribe(ctx context.Context, audioData []byte) (string, error)
}

type Config struct {
	Provider   string
	APIKey     string
	Language   string
	Model      string
	SampleRate int
	Channels   int
	// BaseURL overrides the provider endpoint; empty uses the default.
	BaseURL string
}

func DefaultConfig() Config {
	return Config{
		Provider:   "openai",
		Language:   "es",
		Model:      "whisper-1",
		SampleRate: 16000,
		Channels:   1,
	}
}

// NewTranscriber creates a buffered transcriber backed by the configured
// provider.
func NewTranscriber(config Config) (Transcriber, error) {
	adapter, err := NewAdapter(config)
	if err != nil {
		return nil, err
	}
	return NewBufferedTranscriber(adapter), nil
}

// NewAdapter picks the batch adapter for config.Provider.
func NewAdapter(config Config) (BatchAdapter, error) {
	if config.SampleRate <= 0 {
		config.SampleRate = 16000
	}
	if config.Channels <= 0 {
		config.Channels = 1
	}

	switch config.Provider {
	case "openai":
		if config.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAIAdapter(config), nil

	case "groq":
		if config.APIKey == "" {
			return nil, fmt.Errorf("Groq API key required")
		}
		if config.BaseURL == "" {
			config.BaseURL = groqBaseURL
		}
		return NewOpenAIAdapter(config), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
