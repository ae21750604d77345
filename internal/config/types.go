package config

import (
	"reflect"
	"time"

	"github.com/leonardotrapani/hyprcolor/internal/notify"
)

type Config struct {
	General       GeneralConfig             `toml:"general"`
	Recording     RecordingConfig           `toml:"recording"`
	Transcription TranscriptionConfig       `toml:"transcription"`
	Providers     map[string]ProviderConfig `toml:"providers"`
	Colors        ColorsConfig              `toml:"colors"`
	Clipboard     ClipboardConfig           `toml:"clipboard"`
	Notifications NotificationsConfig       `toml:"notifications"`
}

// GeneralConfig holds global settings that apply across the application
type GeneralConfig struct {
	LogLevel string `toml:"log_level"` // "debug", "info", "warn", "error"
}

// ProviderConfig holds API key for a provider
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
}

type RecordingConfig struct {
	SampleRate        int           `toml:"sample_rate"`
	Channels          int           `toml:"channels"`
	Format            string        `toml:"format"`
	BufferSize        int           `toml:"buffer_size"`
	Device            string        `toml:"device"`
	ChannelBufferSize int           `toml:"channel_buffer_size"`
	Timeout           time.Duration `toml:"timeout"`
}

type TranscriptionConfig struct {
	Provider string        `toml:"provider"`
	Language string        `toml:"language"`
	Model    string        `toml:"model"`
	Timeout  time.Duration `toml:"timeout"`
}

// ColorsConfig selects the colour table. An empty TableFile uses the
// built-in Spanish table.
type ColorsConfig struct {
	TableFile string `toml:"table_file"`
}

type ClipboardConfig struct {
	Enabled  bool          `toml:"enabled"`
	Backends []string      `toml:"backends"`
	Timeout  time.Duration `toml:"timeout"`
}

type NotificationsConfig struct {
	Enabled  bool           `toml:"enabled"`
	Type     string         `toml:"type"` // "desktop", "log", "none"
	Messages MessagesConfig `toml:"messages"`
}

type MessageConfig struct {
	Title string `toml:"title"`
	Body  string `toml:"body"`
}

type MessagesConfig struct {
	RecordingStarted   MessageConfig `toml:"recording_started"`
	Transcribing       MessageConfig `toml:"transcribing"`
	ColorDetected      MessageConfig `toml:"color_detected"`
	NoColor            MessageConfig `toml:"no_color"`
	EmptyTranscript    MessageConfig `toml:"empty_transcript"`
	RecognitionError   MessageConfig `toml:"recognition_error"`
	PermissionDenied   MessageConfig `toml:"permission_denied"`
	OperationCancelled MessageConfig `toml:"operation_cancelled"`
	ConfigReloaded     MessageConfig `toml:"config_reloaded"`
}

// Resolve merges user config with defaults from MessageDefs
func (m *MessagesConfig) Resolve() map[notify.MessageType]notify.Message {
	result := notify.DefaultMessages()

	v := reflect.ValueOf(m).Elem()
	t := v.Type()
	tagToField := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tagToField[t.Field(i).Tag.Get("toml")] = i
	}

	for _, def := range notify.MessageDefs {
		idx, ok := tagToField[def.ConfigKey]
		if !ok {
			continue
		}
		msg := result[def.Type]
		user := v.Field(idx).Interface().(MessageConfig)
		if user.Title != "" {
			msg.Title = user.Title
		}
		if user.Body != "" {
			msg.Body = user.Body
		}
		result[def.Type] = msg
	}
	return result
}
