package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/features"
)

// envPrefix namespaces environment overrides, e.g. WCA_DB_PATH.
const envPrefix = "wca"

type Config struct {
	MediaSentinel    string   `toml:"media_sentinel" envconfig:"MEDIA_SENTINEL"`
	LinkMarker       string   `toml:"link_marker" envconfig:"LINK_MARKER"`
	DBPath           string   `toml:"db_path" envconfig:"DB_PATH"`
	TopEmojis        int      `toml:"top_emojis" envconfig:"TOP_EMOJIS"`
	TopWords         int      `toml:"top_words" envconfig:"TOP_WORDS"`
	ExtraStopwords   []string `toml:"extra_stopwords" envconfig:"EXTRA_STOPWORDS"`
	DropSystemEvents bool     `toml:"drop_system_events" envconfig:"DROP_SYSTEM_EVENTS"`
	LogLevel         string   `toml:"log_level" envconfig:"LOG_LEVEL"`

	// Path is the config file that was read, empty if none existed.
	Path string `toml:"-" ignored:"true"`
}

// DefaultPath is where Load looks for the config file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wca", "config.toml"), nil
}

func Load() (*Config, error) {
	cfgPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(cfgPath)
}

// LoadFrom applies defaults, then the TOML file at cfgPath if it exists,
// then WCA_* environment variables.
func LoadFrom(cfgPath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		MediaSentinel: features.DefaultMediaSentinel,
		LinkMarker:    features.DefaultLinkMarker,
		DBPath:        filepath.Join(home, ".config", "wca", "wca.db"),
		TopEmojis:     10,
		TopWords:      50,
		LogLevel:      "info",
	}

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
		cfg.Path = cfgPath
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	// expand ~ in paths
	cfg.DBPath = expandHome(cfg.DBPath, home)

	if cfg.TopEmojis < 0 || cfg.TopWords < 0 {
		return nil, fmt.Errorf("top_emojis and top_words must not be negative")
	}
	return cfg, nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
