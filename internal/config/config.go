package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API      APIConfig           `mapstructure:"api"`
	UI       UIConfig            `mapstructure:"ui"`
	Snapshot SnapshotConfig      `mapstructure:"snapshot"`
	Log      LogConfig           `mapstructure:"log"`
	Keys     map[string][]string `mapstructure:"keys"`
}

// APIConfig points at the directory API.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	SearchDebounce time.Duration `mapstructure:"search_debounce"`
	RevealStagger  time.Duration `mapstructure:"reveal_stagger"`
	CardWidth      int           `mapstructure:"card_width"`
	DefaultAvatar  string        `mapstructure:"default_avatar"`
	ProfileURL     string        `mapstructure:"profile_url"`
}

// SnapshotConfig controls the local copy of successful loads.
type SnapshotConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Keep    int    `mapstructure:"keep"`
	Offline bool   `mapstructure:"offline"`
}

// LogConfig holds logging settings. The terminal belongs to the TUI, so logs go to a file.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("ui.search_debounce", 300*time.Millisecond)
	v.SetDefault("ui.reveal_stagger", 100*time.Millisecond)
	v.SetDefault("ui.card_width", 38)
	v.SetDefault("ui.default_avatar", "assets/img/default-avatar.jpg")
	v.SetDefault("ui.profile_url", "profile.html")
	v.SetDefault("snapshot.enabled", true)
	v.SetDefault("snapshot.path", filepath.Join(home(), ".local", "share", "creatordir", "snapshots.db"))
	v.SetDefault("snapshot.keep", 5)
	v.SetDefault("snapshot.offline", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(home(), ".local", "state", "creatordir", "creatordir.log"))
}

// Path returns the config file location: $CREATORDIR_CONFIG or ~/.config/creatordir/config.toml.
func Path() string {
	if p := os.Getenv("CREATORDIR_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(home(), ".config", "creatordir", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix CREATORDIR_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("CREATORDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// a missing config file is fine; defaults and env still apply
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return normalize(c), nil
}

func normalize(c Config) Config {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.Timeout < 0 {
		c.API.Timeout = 0
	}
	if c.UI.SearchDebounce <= 0 {
		c.UI.SearchDebounce = 300 * time.Millisecond
	}
	if c.UI.RevealStagger < 0 {
		c.UI.RevealStagger = 0
	}
	if c.UI.CardWidth < 24 {
		c.UI.CardWidth = 24
	}
	if c.Snapshot.Keep < 1 {
		c.Snapshot.Keep = 1
	}
	return c
}

// Save writes the provided config to Path, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("ui.search_debounce", cfg.UI.SearchDebounce.String())
	v.Set("ui.reveal_stagger", cfg.UI.RevealStagger.String())
	v.Set("ui.card_width", cfg.UI.CardWidth)
	v.Set("ui.default_avatar", cfg.UI.DefaultAvatar)
	v.Set("ui.profile_url", cfg.UI.ProfileURL)
	v.Set("snapshot.enabled", cfg.Snapshot.Enabled)
	v.Set("snapshot.path", cfg.Snapshot.Path)
	v.Set("snapshot.keep", cfg.Snapshot.Keep)
	v.Set("snapshot.offline", cfg.Snapshot.Offline)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	for action, keys := range cfg.Keys {
		v.Set("keys."+action, keys)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
