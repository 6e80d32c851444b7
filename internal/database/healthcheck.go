package database

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"
)

// CheckFunc is the standard health check function signature.
type CheckFunc func(ctx context.Context) error

// Healthcheck returns a check that opens one session and runs a trivial
// query, exercising the whole acquire path rather than just a socket ping.
// Concurrent probes are coalesced into a single round-trip.
func Healthcheck(sessions *Provider) CheckFunc {
	var group singleflight.Group

	return func(ctx context.Context) error {
		_, err, _ := group.Do("db", func() (any, error) {
			return nil, sessions.WithSession(ctx, func(ctx context.Context, s *Session) error {
				var one int
				return s.Conn().QueryRow(ctx, "SELECT 1").Scan(&one)
			})
		})
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
