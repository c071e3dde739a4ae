package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the CLI defaults read from the environment. Command-line
// flags override every field.
type Config struct {
	Count    int    `env:"AUTOFIXTURE_COUNT"     envDefault:"3"`
	Seed     *int64 `env:"AUTOFIXTURE_SEED"`
	Format   string `env:"AUTOFIXTURE_FORMAT"    envDefault:"json"`
	LogLevel string `env:"AUTOFIXTURE_LOG_LEVEL" envDefault:"warn"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Count < 0 {
		return Config{}, fmt.Errorf("parse env: AUTOFIXTURE_COUNT must not be negative, got %d", cfg.Count)
	}
	return cfg, nil
}
