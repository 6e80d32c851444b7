// Package logger builds the process-wide slog.Logger: JSON to stdout, level
// taken from LOG_LEVEL, optional Sentry fan-out, and context extractors for
// request-scoped attributes.
package logger
