package database

import "errors"

var (
	ErrInvalidDatabaseURL = errors.New("database: failed to parse connection config")
	ErrConnection         = errors.New("database: database unreachable")
	ErrPoolExhausted      = errors.New("database: timed out acquiring a connection")
	ErrPoolClosed         = errors.New("database: pool is closed")
	ErrHealthcheckFailed  = errors.New("database: healthcheck failed")
)
