package testutil

import (
	"testing"

	"github.com/leonardotrapani/hyprcolor/internal/config"
)

// TestConfig returns a valid configuration for testing
func TestConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Providers["openai"] = config.ProviderConfig{APIKey: "sk-test-api-key"}
	cfg.Notifications.Type = "log"
	return cfg
}

// TestConfigWithInvalidValues returns a config with invalid values for testing validation
func TestConfigWithInvalidValues() *config.Config {
	cfg := TestConfig()
	cfg.Recording.SampleRate = 0
	cfg.Transcription.Provider = "acme"
	cfg.Notifications.Type = "email"
	return cfg
}

// IsolateHome points the XDG config and cache dirs at temporary directories
// and clears provider API keys from the environment.
func IsolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")
}
