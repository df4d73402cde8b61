// Package config provides configuration loading for meetmind.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (MEETMIND_LOGGING_LEVEL, MEETMIND_LEDGER_PATH, ...)
//  2. YAML config file (~/.config/meetmind/config.yaml)
//  3. Hardcoded defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/kararlabs/meetmind/internal/logging"
	"github.com/kararlabs/meetmind/internal/provider"
)

// envPrefix namespaces meetmind environment overrides so credential slots
// like GEMINI_API_KEY stay untouched.
const envPrefix = "MEETMIND_"

// maxConfigFileSize rejects oversized config files.
const maxConfigFileSize = 1024 * 1024

// Config is the full meetmind configuration.
type Config struct {
	Logging   logging.Config            `koanf:"logging"`
	Providers map[string]ProviderConfig `koanf:"providers"`
	Meetings  StoreConfig               `koanf:"meetings"`
	Ledger    StoreConfig               `koanf:"ledger"`
	Scrub     ScrubConfig               `koanf:"scrub"`
}

// ProviderConfig mirrors provider.Config at the YAML layer.
type ProviderConfig struct {
	Model   string `koanf:"model"`
	BaseURL string `koanf:"base_url"`
	Timeout int    `koanf:"timeout"`
}

// StoreConfig locates a JSON-file store.
type StoreConfig struct {
	Path string `koanf:"path"`
}

// ScrubConfig locates the optional redaction allowlist.
type ScrubConfig struct {
	AllowlistPath string `koanf:"allowlist_path"`
}

// ProviderConfigs converts the string-keyed YAML map to provider kinds.
// Unknown names are rejected by Validate before this runs.
func (c *Config) ProviderConfigs() map[provider.Kind]provider.Config {
	out := make(map[provider.Kind]provider.Config, len(c.Providers))
	for name, pc := range c.Providers {
		kind, ok := provider.KindFromName(name)
		if !ok {
			continue
		}
		out[kind] = provider.Config{Model: pc.Model, BaseURL: pc.BaseURL, Timeout: pc.Timeout}
	}
	return out
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	for name := range c.Providers {
		if _, ok := provider.KindFromName(name); !ok {
			return fmt.Errorf("unknown provider %q in config", name)
		}
	}
	return nil
}

// DefaultPath returns ~/.config/meetmind/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "meetmind", "config.yaml"), nil
}

// Load reads configuration from the YAML file at configPath (default path
// when empty), then overrides with MEETMIND_* environment variables.
// A missing file is fine; defaults apply.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		var err error
		configPath, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if info, err := os.Stat(configPath); err == nil {
		if info.Size() > maxConfigFileSize {
			return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
		}
		content, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// MEETMIND_LOGGING_LEVEL -> logging.level
	// MEETMIND_LEDGER_PATH -> ledger.path
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := filepath.Join(home, ".config", "meetmind")
	if cfg.Meetings.Path == "" {
		cfg.Meetings.Path = filepath.Join(dataDir, "meetings.json")
	}
	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = filepath.Join(dataDir, "tasks.json")
	}
}
