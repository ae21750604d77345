package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

var ErrConfigNotFound = errors.New("config not found")

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	hyprcolorDir := filepath.Join(configDir, "hyprcolor")
	if err := os.MkdirAll(hyprcolorDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(hyprcolorDir, "config.toml"), nil
}

func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: run hyprcolor configure", ErrConfigNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
	}

	zap.S().Infof("Config: loading configuration from %s", configPath)
	// start from defaults so sections missing from the file keep sane values
	config := DefaultConfig()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if config.Providers == nil {
		config.Providers = make(map[string]ProviderConfig)
	}

	zap.S().Infof("Config: configuration loaded successfully")
	return config, nil
}

// LoadOrInit loads the config file, writing the defaults first when none
// exists yet.
func LoadOrInit() (*Config, error) {
	config, err := Load()
	if errors.Is(err, ErrConfigNotFound) {
		zap.S().Infof("Config: no configuration found, writing defaults")
		if err := Save(DefaultConfig()); err != nil {
			return nil, err
		}
		return Load()
	}
	return config, err
}

func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	tmp := configPath + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	if _, err := file.WriteString(header); err != nil {
		file.Close()
		return fmt.Errorf("failed to write config header: %w", err)
	}
	if err := toml.NewEncoder(file).Encode(config); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close config file: %w", err)
	}

	// rename keeps the watcher from reloading a half written file
	if err := os.Rename(tmp, configPath); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	zap.S().Infof("Config: saved configuration to %s", configPath)
	return nil
}

const header = `# hyprcolor configuration
# Changes are picked up by the running daemon automatically.
#
# transcription.provider: openai or groq
# providers.<name>.api_key: falls back to OPENAI_API_KEY / GROQ_API_KEY
# colors.table_file: CSV with "name,hex" columns replacing the built-in table
# clipboard.backends: tried in order, "wl-copy" and "system"
# notifications.type: desktop, log or none

`
