package config

import (
	"fmt"
	"strings"
	"time"
)

// Settings holds all process-wide configuration. It is loaded once at startup
// and treated as read-only afterwards; pass it by value into constructors
// instead of reaching for ambient globals.
type Settings struct {
	// Environment
	Env   string `env:"ENV" envDefault:"development"`
	Debug bool   `env:"DEBUG" envDefault:"false"`

	// Database
	DatabaseURL     string `env:"DATABASE_URL"`
	DatabasePoolMin int32  `env:"DATABASE_POOL_MIN" envDefault:"1"`
	DatabasePoolMax int32  `env:"DATABASE_POOL_MAX" envDefault:"20"`
	// Connection acquire timeout in seconds.
	DatabaseTimeout int `env:"DATABASE_TIMEOUT" envDefault:"30"`

	// JWT security. Parsed and validated at startup even though no endpoint
	// issues tokens yet; the auth handlers land together with the domain model.
	SecretKey                string `env:"SECRET_KEY"`
	Algorithm                string `env:"ALGORITHM" envDefault:"HS256"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`
	RefreshTokenExpireDays   int    `env:"REFRESH_TOKEN_EXPIRE_DAYS" envDefault:"7"`

	// API metadata served by the root endpoint.
	APITitle       string `env:"API_TITLE" envDefault:"Expense Management API"`
	APIVersion     string `env:"API_VERSION" envDefault:"1.0.0"`
	APIDescription string `env:"API_DESCRIPTION" envDefault:"Track and analyze personal expenses"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:8000"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`

	// HTTP listener.
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8000"`
}

// PoolURL returns the connection string qualified with the canonical scheme
// the pgx driver advertises. The substitution happens at most once; an
// already-qualified URL passes through unchanged.
func (s Settings) PoolURL() string {
	if rest, ok := strings.CutPrefix(s.DatabaseURL, "postgresql://"); ok {
		return "postgres://" + rest
	}
	return s.DatabaseURL
}

// Timeout returns DATABASE_TIMEOUT as a duration.
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.DatabaseTimeout) * time.Second
}

// Addr returns the host:port the HTTP server binds to.
func (s Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
