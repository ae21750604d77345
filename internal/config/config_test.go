package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/leonardotrapani/hyprcolor/internal/color"
	"github.com/leonardotrapani/hyprcolor/internal/notify"
)

func setupConfigDir(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")
	return tempDir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, "hyprcolor")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func validConfig() *Config {
	c := DefaultConfig()
	c.Providers["openai"] = ProviderConfig{APIKey: "sk-test"}
	return c
}

func TestGetConfigPath(t *testing.T) {
	tempDir := setupConfigDir(t)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	want := filepath.Join(tempDir, "hyprcolor", "config.toml")
	if path != want {
		t.Errorf("GetConfigPath() = %q, want %q", path, want)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("config directory not created: %v", err)
	}
}

func TestConfig_Load(t *testing.T) {
	tempDir := setupConfigDir(t)
	writeConfig(t, tempDir, `
[recording]
  device = "alsa_input.usb"
  timeout = "10s"

[transcription]
  provider = "groq"
  model = "whisper-large-v3"

[providers.groq]
  api_key = "gsk_test"

[notifications]
  type = "log"
  [notifications.messages.color_detected]
    title = "Color"
`)

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.Recording.Device != "alsa_input.usb" {
		t.Errorf("Recording.Device = %q", config.Recording.Device)
	}
	if config.Recording.Timeout != 10*time.Second {
		t.Errorf("Recording.Timeout = %v, want 10s", config.Recording.Timeout)
	}
	// unspecified values keep their defaults
	if config.Recording.SampleRate != 16000 {
		t.Errorf("Recording.SampleRate = %d, want 16000", config.Recording.SampleRate)
	}
	if config.Transcription.Language != "es" {
		t.Errorf("Transcription.Language = %q, want es", config.Transcription.Language)
	}
	if config.Transcription.Provider != "groq" {
		t.Errorf("Transcription.Provider = %q", config.Transcription.Provider)
	}
	if config.Providers["groq"].APIKey != "gsk_test" {
		t.Errorf("Providers[groq].APIKey = %q", config.Providers["groq"].APIKey)
	}
	if config.Notifications.Type != "log" {
		t.Errorf("Notifications.Type = %q", config.Notifications.Type)
	}
	if config.Notifications.Messages.ColorDetected.Title != "Color" {
		t.Errorf("ColorDetected.Title = %q", config.Notifications.Messages.ColorDetected.Title)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	setupConfigDir(t)

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "config not found") {
		t.Errorf("Load() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	tempDir := setupConfigDir(t)
	writeConfig(t, tempDir, "[recording\nsample_rate = ")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on invalid TOML")
	}
}

func TestLoadOrInit_WritesDefaults(t *testing.T) {
	tempDir := setupConfigDir(t)

	config, err := LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit() error = %v", err)
	}
	if !reflect.DeepEqual(config, DefaultConfig()) {
		t.Errorf("LoadOrInit() = %+v, want defaults", config)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, "hyprcolor", "config.toml"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "# hyprcolor configuration") {
		t.Errorf("config file missing header:\n%s", data)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	setupConfigDir(t)

	want := validConfig()
	want.Colors.TableFile = "/tmp/colores.csv"
	want.Clipboard.Backends = []string{"system"}
	want.Notifications.Messages.NoColor.Body = "Nada"

	if err := Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestValidate(t *testing.T) {
	setupConfigDir(t)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad log level", func(c *Config) { c.General.LogLevel = "trace" }, "general.log_level"},
		{"zero sample rate", func(c *Config) { c.Recording.SampleRate = 0 }, "recording.sample_rate"},
		{"zero timeout", func(c *Config) { c.Recording.Timeout = 0 }, "recording.timeout"},
		{"unknown provider", func(c *Config) { c.Transcription.Provider = "acme" }, "transcription.provider"},
		{"missing key", func(c *Config) { c.Providers = nil }, "API key required"},
		{"bad model", func(c *Config) { c.Transcription.Model = "whisper-large-v3" }, "invalid model"},
		{"bad language", func(c *Config) { c.Transcription.Language = "klingon" }, "transcription.language"},
		{"auto language", func(c *Config) { c.Transcription.Language = "" }, ""},
		{"missing table file", func(c *Config) { c.Colors.TableFile = "/nonexistent/colores.csv" }, "colors.table_file"},
		{"no backends", func(c *Config) { c.Clipboard.Backends = nil }, "clipboard.backends"},
		{"unknown backend", func(c *Config) { c.Clipboard.Backends = []string{"xclip"} }, "unknown [xclip]"},
		{"clipboard disabled", func(c *Config) { c.Clipboard = ClipboardConfig{} }, ""},
		{"bad notification type", func(c *Config) { c.Notifications.Type = "email" }, "notifications.type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_APIKeyFromEnv(t *testing.T) {
	setupConfigDir(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if got := c.ToTranscriberConfig().APIKey; got != "sk-env" {
		t.Errorf("APIKey = %q, want sk-env", got)
	}
}

func TestToTranscriberConfig(t *testing.T) {
	setupConfigDir(t)
	t.Setenv("GROQ_API_KEY", "gsk_env")

	c := DefaultConfig()
	c.Transcription.Provider = "groq"
	c.Transcription.Model = ""
	c.Providers["groq"] = ProviderConfig{APIKey: "gsk_file"}

	tc := c.ToTranscriberConfig()
	if tc.APIKey != "gsk_file" {
		t.Errorf("APIKey = %q, config file should win over env", tc.APIKey)
	}
	if tc.Model != "whisper-large-v3-turbo" {
		t.Errorf("Model = %q, want provider default", tc.Model)
	}
	if tc.Language != "es" || tc.SampleRate != 16000 || tc.Channels != 1 {
		t.Errorf("unexpected transcriber config: %+v", tc)
	}
}

func TestToClipboardConfig(t *testing.T) {
	c := DefaultConfig()
	cc := c.ToClipboardConfig()
	cc.Backends[0] = "changed"
	if c.Clipboard.Backends[0] != "wl-copy" {
		t.Error("ToClipboardConfig should copy the backend list")
	}
}

func TestColorTable(t *testing.T) {
	c := DefaultConfig()
	table, err := c.ColorTable()
	if err != nil || table != color.Default {
		t.Fatalf("ColorTable() = %p, %v; want built-in table", table, err)
	}

	path := filepath.Join(t.TempDir(), "colores.csv")
	if err := os.WriteFile(path, []byte("name,hex\nmagenta,#FF00FF\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c.Colors.TableFile = path
	table, err = c.ColorTable()
	if err != nil {
		t.Fatalf("ColorTable() error = %v", err)
	}
	if hex, ok := table.Resolve("un magenta"); !ok || hex != "#FF00FF" {
		t.Errorf("custom table Resolve = %q, %v", hex, ok)
	}
}

func TestNotifier(t *testing.T) {
	c := DefaultConfig()
	if _, ok := c.Notifier().(notify.Desktop); !ok {
		t.Error("default notifier should be desktop")
	}
	c.Notifications.Enabled = false
	if _, ok := c.Notifier().(notify.Nop); !ok {
		t.Error("disabled notifications should use Nop")
	}
}

func TestMessagesConfig_Resolve_Defaults(t *testing.T) {
	var m MessagesConfig
	resolved := m.Resolve()

	for _, def := range notify.MessageDefs {
		msg, ok := resolved[def.Type]
		if !ok {
			t.Errorf("missing message for %s", def.ConfigKey)
			continue
		}
		if msg.Title != def.DefaultTitle || msg.Body != def.DefaultBody {
			t.Errorf("%s = %+v, want defaults", def.ConfigKey, msg)
		}
	}
}

func TestMessagesConfig_Resolve_CustomOverrides(t *testing.T) {
	m := MessagesConfig{
		ColorDetected:    MessageConfig{Title: "Color"},
		PermissionDenied: MessageConfig{Body: "Sin micrófono"},
	}
	resolved := m.Resolve()

	if got := resolved[notify.MsgColorDetected]; got.Title != "Color" || got.Body != "%s" {
		t.Errorf("ColorDetected = %+v", got)
	}
	if got := resolved[notify.MsgPermissionDenied]; got.Body != "Sin micrófono" || !got.IsError {
		t.Errorf("PermissionDenied = %+v", got)
	}
}

func TestMessagesConfig_TagsMatchDefs(t *testing.T) {
	keys := map[string]bool{}
	for _, def := range notify.MessageDefs {
		keys[def.ConfigKey] = true
	}

	typ := reflect.TypeOf(MessagesConfig{})
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("toml")
		if !keys[tag] {
			t.Errorf("field %s tag %q has no MessageDef", typ.Field(i).Name, tag)
		}
		delete(keys, tag)
	}
	for key := range keys {
		t.Errorf("MessageDef %q has no MessagesConfig field", key)
	}
}
