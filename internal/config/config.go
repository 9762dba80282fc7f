package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read once at process start. The fairness mode is parsed here and
// then passed explicitly into the components that need it; nothing re-reads
// the environment mid-flight.
type Config struct {
	DBPath        string        `env:"DB_PATH" envDefault:"fairness.sqlite"`
	Port          string        `env:"PORT" envDefault:"8080"`
	FairnessMode  string        `env:"FAIRNESS_MODE" envDefault:"legacy_per_game_v1"`
	StrictClose   bool          `env:"STRICT_CLOSE" envDefault:"false"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
