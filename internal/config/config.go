// Package config loads the folco settings from the environment. Command
// line flags take precedence over the values loaded here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/esimov/folco/utils"
)

// Config holds the tunables of the folco command.
type Config struct {
	// Workers bounds the directories processed concurrently. Zero uses
	// the number of CPUs.
	Workers          int    `env:"FOLCO_WORKERS" envDefault:"0"`
	IconSize         int    `env:"FOLCO_ICON_SIZE" envDefault:"256"`
	EmojiBaseURL     string `env:"FOLCO_EMOJI_BASE_URL" envDefault:"https://cdn.jsdelivr.net/gh/jdecked/twemoji@latest/assets/svg/"`
	CacheDir         string `env:"FOLCO_CACHE_DIR"`
	ProgressCapacity int    `env:"FOLCO_PROGRESS_CAPACITY" envDefault:"32"`
	Verbose          bool   `env:"FOLCO_VERBOSE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config and fills the values which
// depend on the host.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir()
	}
	if cfg.Workers < 0 {
		return Config{}, fmt.Errorf("FOLCO_WORKERS must not be negative, got %d", cfg.Workers)
	}
	if cfg.IconSize <= 0 {
		return Config{}, fmt.Errorf("FOLCO_ICON_SIZE must be positive, got %d", cfg.IconSize)
	}
	if !utils.IsValidUrl(cfg.EmojiBaseURL) {
		return Config{}, fmt.Errorf("FOLCO_EMOJI_BASE_URL is not a valid url: %q", cfg.EmojiBaseURL)
	}
	return cfg, nil
}

// TwemojiCacheDir is where the downloaded emoji artwork is kept. It is
// empty when no cache directory could be determined.
func (c Config) TwemojiCacheDir() string {
	if c.CacheDir == "" {
		return ""
	}
	return filepath.Join(c.CacheDir, "twemoji")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "folco")
}
