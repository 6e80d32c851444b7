package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/expensio/api/internal/config"
)

// PoolOverflow is the fixed allowance of transient connections beyond
// DATABASE_POOL_MAX before acquisition blocks.
const PoolOverflow = 10

// Connect builds the process-wide PostgreSQL connection pool from settings.
//
// Connection establishment is lazy: no handshake happens here, so Connect
// never fails because the database is unreachable — only the first acquire
// can. This lets the service start and report liveness independently of
// database health.
//
// Every connection is pinged before it is handed out; dead connections are
// discarded and acquisition retried transparently. Statement caching is
// disabled to avoid stale-plan hazards across reconnects and connection
// poolers such as PgBouncer.
func Connect(ctx context.Context, settings config.Settings) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(settings.PoolURL())
	if err != nil {
		return nil, errors.Join(ErrInvalidDatabaseURL, err)
	}

	cfg.MinConns = settings.DatabasePoolMin
	cfg.MaxConns = settings.DatabasePoolMax + PoolOverflow
	cfg.ConnConfig.ConnectTimeout = settings.Timeout()
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec
	cfg.ConnConfig.StatementCacheCapacity = 0
	cfg.ConnConfig.DescriptionCacheCapacity = 0
	cfg.ConnConfig.RuntimeParams["jit"] = "off"

	// Pre-use liveness probe. Returning false destroys the connection and the
	// pool acquires a replacement.
	cfg.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		return conn.Ping(ctx) == nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Join(ErrInvalidDatabaseURL, err)
	}

	return pool, nil
}

// Shutdown returns a hook that closes the connection pool. Safe to call more
// than once; the second close is a no-op. Must run only after in-flight
// sessions have been released — the server drains requests first.
func Shutdown(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		pool.Close()
		return nil
	}
}
