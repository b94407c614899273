// Package config loads arena settings from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config is the runtime configuration shared by the arena commands.
type Config struct {
	DBPath           string `env:"ARENA_DB_PATH" envDefault:"arena.db"`
	ProgramID        string `env:"ARENA_PROGRAM_ID" envDefault:"rGi3t3WPmchGjQ91YCLsQtiDGX2xTjjVodycFKtdk7m"`
	LogLevel         string `env:"ARENA_LOG_LEVEL" envDefault:"info"`
	AccountCacheSize int    `env:"ARENA_ACCOUNT_CACHE_SIZE" envDefault:"1024"`
	OTelEndpoint     string `env:"ARENA_OTEL_ENDPOINT"`
	OTelEnabled      bool   `env:"ARENA_OTEL_ENABLED" envDefault:"true"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.AccountCacheSize <= 0 {
		return Config{}, fmt.Errorf("ARENA_ACCOUNT_CACHE_SIZE must be positive, got %d", cfg.AccountCacheSize)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
