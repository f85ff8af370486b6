// Package config loads and saves the paydash TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultBaseURL is the backend used when nothing else is configured.
	DefaultBaseURL = "http://127.0.0.1:5000/api"

	// EnvBaseURL overrides the configured backend base URL.
	EnvBaseURL = "PAYDASH_API_BASE_URL"
	// EnvBaseURLCompat is honored after EnvBaseURL for existing deployments.
	EnvBaseURLCompat = "API_BASE_URL"
)

// Config holds all paydash configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	Appearance AppearanceConfig `toml:"appearance"`
	TUI        TUIConfig        `toml:"tui"`
	Daemon     DaemonConfig     `toml:"daemon"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL    string `toml:"base_url,omitempty"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TUIConfig holds interactive dashboard settings.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

// DaemonConfig holds background poller settings.
type DaemonConfig struct {
	Addr          string `toml:"addr"`
	IntervalSec   int    `toml:"interval_sec"`
	RecordHistory bool   `toml:"record_history"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			TimeoutSec: 10,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		TUI: TUIConfig{
			RefreshIntervalSec: 30,
		},
		Daemon: DaemonConfig{
			Addr:          "127.0.0.1:8788",
			IntervalSec:   15,
			RecordHistory: true,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "paydash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "paydash")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// CacheDir returns the directory for the history database, logs and pid files.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "paydash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "paydash")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// ResolveBaseURL picks the backend base URL: flag, then env vars, then the
// config file, then DefaultBaseURL.
func ResolveBaseURL(flag string, cfg Config) string {
	for _, v := range []string{
		flag,
		os.Getenv(EnvBaseURL),
		os.Getenv(EnvBaseURLCompat),
		cfg.API.BaseURL,
	} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return DefaultBaseURL
}

// BaseURLSource names where ResolveBaseURL found its value.
func BaseURLSource(flag string, cfg Config) string {
	switch {
	case strings.TrimSpace(flag) != "":
		return "flag"
	case strings.TrimSpace(os.Getenv(EnvBaseURL)) != "":
		return EnvBaseURL
	case strings.TrimSpace(os.Getenv(EnvBaseURLCompat)) != "":
		return EnvBaseURLCompat
	case strings.TrimSpace(cfg.API.BaseURL) != "":
		return "config"
	}
	return "default"
}

// Timeout returns the per-request timeout, defaulting to 10s.
func (c Config) Timeout() time.Duration {
	if c.API.TimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.API.TimeoutSec) * time.Second
}

// RefreshInterval returns the TUI auto-refresh interval, never below 10s.
func (c Config) RefreshInterval() time.Duration {
	d := time.Duration(c.TUI.RefreshIntervalSec) * time.Second
	if d < 10*time.Second {
		return 30 * time.Second
	}
	return d
}
