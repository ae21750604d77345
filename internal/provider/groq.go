package provider

import "strings"

// GroqProvider implements Provider for Groq's OpenAI-compatible Whisper.
type GroqProvider struct{}

func (p *GroqProvider) Name() string        { return "groq" }
func (p *GroqProvider) DisplayName() string { return "Groq" }
func (p *GroqProvider) EnvVar() string      { return "GROQ_API_KEY" }
func (p *GroqProvider) APIKeyURL() string   { return "https://console.groq.com/keys" }

func (p *GroqProvider) ValidateAPIKey(key string) bool {
	return strings.HasPrefix(key, "gsk_")
}

func (p *GroqProvider) Models() []Model {
	return []Model{
		{ID: "whisper-large-v3-turbo", Name: "Whisper Large v3 Turbo", Description: "Fast multilingual Whisper"},
		{ID: "whisper-large-v3", Name: "Whisper Large v3", Description: "Most accurate Whisper on Groq"},
	}
}

func (p *GroqProvider) DefaultModel() string { return "whisper-large-v3-turbo" }
