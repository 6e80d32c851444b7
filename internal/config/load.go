package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load reads Settings from the process environment, optionally seeded from a
// .env file in the working directory. It is a pure function of the environment
// at call time: identical environments yield identical Settings.
//
// Configuration errors are fatal; callers abort startup instead of recovering.
func Load() (Settings, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, errors.Join(ErrInvalidConfig, err)
	}

	if s.DatabaseURL == "" {
		return Settings{}, ErrMissingDatabaseURL
	}
	if s.SecretKey == "" {
		return Settings{}, ErrMissingSecretKey
	}

	return s, nil
}
