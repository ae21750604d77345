package config

import (
	"fmt"
	"os"

	"github.com/samber/lo"

	"github.com/leonardotrapani/hyprcolor/internal/provider"
)

var (
	logLevels         = []string{"debug", "info", "warn", "error"}
	notificationTypes = []string{"desktop", "log", "none"}
	clipboardBackends = []string{"wl-copy", "system"}

	// ISO-639-1 codes accepted by the Whisper models
	whisperLanguages = []string{
		"af", "ar", "az", "be", "bg", "bs", "ca", "cs", "cy", "da", "de", "el",
		"en", "es", "et", "fa", "fi", "fr", "gl", "he", "hi", "hr", "hu", "hy",
		"id", "is", "it", "ja", "kk", "kn", "ko", "lt", "lv", "mi", "mk", "mr",
		"ms", "ne", "nl", "no", "pl", "pt", "ro", "ru", "sk", "sl", "sr", "sv",
		"sw", "ta", "th", "tl", "tr", "uk", "ur", "vi", "zh",
	}
)

func (c *Config) Validate() error {
	if c.General.LogLevel != "" && !lo.Contains(logLevels, c.General.LogLevel) {
		return fmt.Errorf("invalid general.log_level: %s (must be one of %v)", c.General.LogLevel, logLevels)
	}

	if c.Recording.SampleRate <= 0 {
		return fmt.Errorf("invalid recording.sample_rate: %d", c.Recording.SampleRate)
	}
	if c.Recording.Channels <= 0 {
		return fmt.Errorf("invalid recording.channels: %d", c.Recording.Channels)
	}
	if c.Recording.BufferSize <= 0 {
		return fmt.Errorf("invalid recording.buffer_size: %d", c.Recording.BufferSize)
	}
	if c.Recording.ChannelBufferSize <= 0 {
		return fmt.Errorf("invalid recording.channel_buffer_size: %d", c.Recording.ChannelBufferSize)
	}
	if c.Recording.Format == "" {
		return fmt.Errorf("invalid recording.format: empty")
	}
	if c.Recording.Timeout <= 0 {
		return fmt.Errorf("invalid recording.timeout: %v", c.Recording.Timeout)
	}

	p := provider.GetProvider(c.Transcription.Provider)
	if p == nil {
		return fmt.Errorf("invalid transcription.provider: %q (must be one of %v)", c.Transcription.Provider, provider.ListProviders())
	}
	if c.resolveAPIKeyForProvider(p.Name()) == "" {
		return fmt.Errorf("%s API key required: not found in config (providers.%s.api_key) or environment variable (%s)",
			p.DisplayName(), p.Name(), p.EnvVar())
	}
	if c.Transcription.Model != "" && !provider.HasModel(p, c.Transcription.Model) {
		return fmt.Errorf("invalid model for %s: %s (must be one of %v)", p.Name(), c.Transcription.Model, provider.ModelIDs(p))
	}
	if c.Transcription.Language != "" && !lo.Contains(whisperLanguages, c.Transcription.Language) {
		return fmt.Errorf("invalid transcription.language: %s (use empty string for auto-detect or ISO-639-1 codes like 'es', 'en')", c.Transcription.Language)
	}
	if c.Transcription.Timeout <= 0 {
		return fmt.Errorf("invalid transcription.timeout: %v", c.Transcription.Timeout)
	}

	if c.Colors.TableFile != "" {
		if _, err := os.Stat(c.Colors.TableFile); err != nil {
			return fmt.Errorf("invalid colors.table_file: %w", err)
		}
	}

	if c.Clipboard.Enabled {
		if len(c.Clipboard.Backends) == 0 {
			return fmt.Errorf("invalid clipboard.backends: empty")
		}
		if unknown := lo.Without(c.Clipboard.Backends, clipboardBackends...); len(unknown) > 0 {
			return fmt.Errorf("invalid clipboard.backends: unknown %v (must be from %v)", unknown, clipboardBackends)
		}
		if c.Clipboard.Timeout <= 0 {
			return fmt.Errorf("invalid clipboard.timeout: %v", c.Clipboard.Timeout)
		}
	}

	if !lo.Contains(notificationTypes, c.Notifications.Type) {
		return fmt.Errorf("invalid notifications.type: %s (must be one of %v)", c.Notifications.Type, notificationTypes)
	}

	return nil
}
