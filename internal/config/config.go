// ABOUTME: Configuration loader for the console
// ABOUTME: Reads EVENTDESK_* variables (optionally from .env) with defaults

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// AppName names the config directory and binary
const AppName = "eventdesk"

type Config struct {
	APIURL    string        `env:"EVENTDESK_API_URL,    default=http://localhost:5000/api"`
	ConfigDir string        `env:"EVENTDESK_CONFIG_DIR"`
	LogLevel  string        `env:"EVENTDESK_LOG_LEVEL,  default=info"`
	Timeout   time.Duration `env:"EVENTDESK_TIMEOUT,    default=30s"`
	CacheTTL  time.Duration `env:"EVENTDESK_CACHE_TTL,  default=30s"`
}

// Load reads an optional .env file from the working directory, then the environment
func Load(ctx context.Context) (*Config, error) {
	if err := LoadDotenv(".env"); err != nil {
		return nil, err
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadDotenv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// LoadWith reads configuration from the given lookuper
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = DefaultConfigDir()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Override applies non-empty flag values on top of env and defaults
func (c *Config) Override(apiURL, logLevel string) error {
	if apiURL != "" {
		c.APIURL = apiURL
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	return c.Validate()
}

// Validate checks values that would only fail later at request time
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: EVENTDESK_API_URL must be an http(s) URL, got %q", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: EVENTDESK_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config: EVENTDESK_CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	return nil
}

// DefaultConfigDir returns the default config directory following XDG conventions
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}
