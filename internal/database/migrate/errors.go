package migrate

import "errors"

var (
	ErrCollect         = errors.New("migrate: failed to collect migration steps")
	ErrParse           = errors.New("migrate: malformed migration file")
	ErrInvalidTarget   = errors.New("migrate: failed to parse database url")
	ErrConnect         = errors.New("migrate: failed to connect to database")
	ErrMigrationFailed = errors.New("migrate: migration failed")
)
