package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leonardotrapani/hyprcolor/internal/config"
)

// maskAPIKey returns a masked version of an API key for display
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// configuredProviders returns the providers with an API key, sorted.
func configuredProviders(cfg *config.Config) []string {
	var providers []string
	for name, pc := range cfg.Providers {
		if pc.APIKey != "" {
			providers = append(providers, name)
		}
	}
	sort.Strings(providers)
	return providers
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Summary renders the settings the configure form edits.
func Summary(cfg *config.Config) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "  %s %s\n", StyleLabel.Render(label), value)
	}

	keys := make([]string, 0, len(cfg.Providers))
	for _, name := range configuredProviders(cfg) {
		keys = append(keys, fmt.Sprintf("%s (%s)", name, maskAPIKey(cfg.Providers[name].APIKey)))
	}
	line("Providers:", orDefault(strings.Join(keys, ", "), "none"))
	line("Transcription:", fmt.Sprintf("%s (%s)", cfg.Transcription.Provider, orDefault(cfg.Transcription.Model, "default model")))
	line("Language:", orDefault(cfg.Transcription.Language, "auto-detect"))
	line("Colour table:", orDefault(cfg.Colors.TableFile, "built-in"))

	if cfg.Clipboard.Enabled {
		line("Clipboard:", strings.Join(cfg.Clipboard.Backends, " -> "))
	} else {
		line("Clipboard:", "disabled")
	}
	if cfg.Notifications.Enabled {
		line("Notifications:", cfg.Notifications.Type)
	} else {
		line("Notifications:", "disabled")
	}
	return b.String()
}
