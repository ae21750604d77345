package config

import (
	"fmt"
	"os"

	"github.com/leonardotrapani/hyprcolor/internal/clipboard"
	"github.com/leonardotrapani/hyprcolor/internal/color"
	"github.com/leonardotrapani/hyprcolor/internal/notify"
	"github.com/leonardotrapani/hyprcolor/internal/provider"
	"github.com/leonardotrapani/hyprcolor/internal/recording"
	"github.com/leonardotrapani/hyprcolor/internal/transcriber"
)

func (c *Config) ToRecordingConfig() recording.Config {
	return recording.Config{
		SampleRate:        c.Recording.SampleRate,
		Channels:          c.Recording.Channels,
		Format:            c.Recording.Format,
		BufferSize:        c.Recording.BufferSize,
		Device:            c.Recording.Device,
		ChannelBufferSize: c.Recording.ChannelBufferSize,
		Timeout:           c.Recording.Timeout,
	}
}

func (c *Config) ToTranscriberConfig() transcriber.Config {
	config := transcriber.Config{
		Provider:   c.Transcription.Provider,
		Language:   c.Transcription.Language,
		Model:      c.Transcription.Model,
		SampleRate: c.Recording.SampleRate,
		Channels:   c.Recording.Channels,
	}
	if config.Model == "" {
		if p := provider.GetProvider(config.Provider); p != nil {
			config.Model = p.DefaultModel()
		}
	}

	config.APIKey = c.resolveAPIKeyForProvider(c.Transcription.Provider)

	return config
}

// resolveAPIKeyForProvider returns the providers table key, falling back to
// the provider's environment variable
func (c *Config) resolveAPIKeyForProvider(providerName string) string {
	if c.Providers != nil {
		if pc, ok := c.Providers[providerName]; ok && pc.APIKey != "" {
			return pc.APIKey
		}
	}

	if envVar := provider.EnvVarForProvider(providerName); envVar != "" {
		return os.Getenv(envVar)
	}

	return ""
}

func (c *Config) ToClipboardConfig() clipboard.Config {
	return clipboard.Config{
		Enabled:  c.Clipboard.Enabled,
		Backends: append([]string(nil), c.Clipboard.Backends...),
		Timeout:  c.Clipboard.Timeout,
	}
}

// ColorTable returns the table named by colors.table_file, or the built-in
// table when none is set.
func (c *Config) ColorTable() (*color.Table, error) {
	if c.Colors.TableFile == "" {
		return color.Default, nil
	}
	table, err := color.LoadCSV(c.Colors.TableFile)
	if err != nil {
		return nil, fmt.Errorf("load colors.table_file: %w", err)
	}
	return table, nil
}

// Notifier builds the notifier selected by the notifications section.
func (c *Config) Notifier() notify.Notifier {
	if !c.Notifications.Enabled {
		return notify.Nop{}
	}
	return notify.New(c.Notifications.Type, c.Notifications.Messages.Resolve())
}
