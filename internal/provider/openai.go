package provider

import "strings"

// OpenAIProvider implements Provider for OpenAI Whisper.
type OpenAIProvider struct{}

func (p *OpenAIProvider) Name() string        { return "openai" }
func (p *OpenAIProvider) DisplayName() string { return "OpenAI" }
func (p *OpenAIProvider) EnvVar() string      { return "OPENAI_API_KEY" }
func (p *OpenAIProvider) APIKeyURL() string   { return "https://platform.openai.com/api-keys" }

func (p *OpenAIProvider) ValidateAPIKey(key string) bool {
	return strings.HasPrefix(key, "sk-")
}

func (p *OpenAIProvider) Models() []Model {
	return []Model{
		{ID: "whisper-1", Name: "Whisper 1", Description: "OpenAI's production speech-to-text model"},
		{ID: "gpt-4o-mini-transcribe", Name: "GPT-4o Mini Transcribe", Description: "Faster, cheaper transcription"},
		{ID: "gpt-4o-transcribe", Name: "GPT-4o Transcribe", Description: "Highest accuracy"},
	}
}

func (p *OpenAIProvider) DefaultModel() string { return "whisper-1" }
