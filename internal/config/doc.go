// Package config loads process-wide settings from environment variables.
//
// Settings are constructed exactly once at process start (or once per
// migration invocation) and are immutable for the process lifetime. Required
// variables are DATABASE_URL and SECRET_KEY; everything else carries a
// documented default.
package config
