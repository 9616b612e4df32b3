// Package config loads and saves the TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all smokesense configuration.
type Config struct {
	General   GeneralConfig   `toml:"general"`
	Sync      SyncConfig      `toml:"sync"`
	Financial FinancialConfig `toml:"financial"`
	Logging   LoggingConfig   `toml:"logging"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultDays int    `toml:"default_days"`
	DataDir     string `toml:"data_dir,omitempty"`
}

// SyncConfig holds remote collector settings. Endpoint and API key are
// runtime configuration, never compiled in.
type SyncConfig struct {
	Endpoint        string `toml:"endpoint,omitempty"`
	APIKey          string `toml:"api_key,omitempty"`
	IntervalMinutes int    `toml:"interval_minutes"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

// Interval returns the debounce interval between scheduled drains.
func (s SyncConfig) Interval() time.Duration {
	if s.IntervalMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.IntervalMinutes) * time.Minute
}

// Timeout returns the per-request network timeout.
func (s SyncConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// FinancialConfig holds cost settings for projections.
type FinancialConfig struct {
	PricePerPack      float64 `toml:"price_per_pack"`
	CigarettesPerPack int     `toml:"cigarettes_per_pack"`
	Currency          string  `toml:"currency"`
}

// PricePerCigarette derives the per-unit price used by projections.
func (f FinancialConfig) PricePerCigarette() float64 {
	if f.CigarettesPerPack <= 0 {
		return 0
	}
	return f.PricePerPack / float64(f.CigarettesPerPack)
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultDays: 30,
		},
		Sync: SyncConfig{
			IntervalMinutes: 5,
			TimeoutSeconds:  15,
		},
		Financial: FinancialConfig{
			PricePerPack:      10,
			CigarettesPerPack: 20,
			Currency:          "$",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "smokesense")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "smokesense")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DBPath returns the database path: the configured data dir when set,
// otherwise alongside the config file.
func DBPath(cfg Config) string {
	if cfg.General.DataDir != "" {
		return filepath.Join(cfg.General.DataDir, "smokesense.db")
	}
	return filepath.Join(ConfigDir(), "smokesense.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
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
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// SyncEndpoint returns the endpoint from env var or config, in that order.
func SyncEndpoint(cfg Config) string {
	if ep := os.Getenv("SMOKESENSE_SYNC_ENDPOINT"); ep != "" {
		return ep
	}
	return cfg.Sync.Endpoint
}

// SyncAPIKey returns the API key from env var or config, in that order.
func SyncAPIKey(cfg Config) string {
	if key := os.Getenv("SMOKESENSE_API_KEY"); key != "" {
		return key
	}
	return cfg.Sync.APIKey
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
