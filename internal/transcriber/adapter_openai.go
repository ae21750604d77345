package transcriber

import (
	"bytes"
	"context"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// OpenAIAdapter implements BatchAdapter for the OpenAI audio API and for
// compatible endpoints such as Groq.
type OpenAIAdapter struct {
	client *openai.Client
	config Config
}

func NewOpenAIAdapter(config Config) *OpenAIAdapter {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

func (a *OpenAIAdapter) Transcribe(ctx context.Context, audioData []byte) (string, error) {
	if len(audioData) == 0 {
		return "", nil
	}

	wav := pcmToWAV(audioData, a.config.SampleRate, a.config.Channels)

	req := openai.AudioRequest{
		Model:    a.config.Model,
		Reader:   bytes.NewReader(wav),
		FilePath: "audio.wav",
		Language: a.config.Language,
		// nudges whisper towards spelling colour names plainly
		Prompt: "Nombres de colores en español.",
	}

	start := time.Now()
	resp, err := a.client.CreateTranscription(ctx, req)
	duration := time.Since(start)
	if err != nil {
		zap.S().Warnf("%s-adapter: API call failed after %v: %v", a.config.Provider, duration, err)
		return "", backendError(a.config.Provider, err)
	}

	// whisper may return decomposed accents; table names are composed
	text := norm.NFC.String(resp.Text)
	zap.S().Infof("%s-adapter: transcribed %d bytes in %v: %q", a.config.Provider, len(audioData), duration, text)
	return text, nil
}
