package config

import "time"

// DefaultConfig returns the configuration written on first start.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
		},
		Recording: RecordingConfig{
			SampleRate:        16000,
			Channels:          1,
			Format:            "s16",
			BufferSize:        8192,
			Device:            "",
			ChannelBufferSize: 30,
			Timeout:           30 * time.Second,
		},
		Transcription: TranscriptionConfig{
			Provider: "openai",
			Language: "es",
			Model:    "whisper-1",
			Timeout:  30 * time.Second,
		},
		Providers: make(map[string]ProviderConfig),
		Clipboard: ClipboardConfig{
			Enabled:  true,
			Backends: []string{"wl-copy", "system"},
			Timeout:  3 * time.Second,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
			Type:    "desktop",
		},
	}
}
