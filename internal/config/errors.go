package config

import "errors"

var (
	ErrMissingDatabaseURL = errors.New("config: DATABASE_URL is required")
	ErrMissingSecretKey   = errors.New("config: SECRET_KEY is required")
	ErrInvalidConfig      = errors.New("config: failed to parse environment")
)
