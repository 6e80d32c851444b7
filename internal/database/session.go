package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/puddle/v2"
)

// Provider issues one Session per unit of work, backed by the shared pool.
// It borrows connections but never owns the pool.
type Provider struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewProvider wraps pool with the configured acquire timeout
// (DATABASE_TIMEOUT). A non-positive timeout disables the deadline.
func NewProvider(pool *pgxpool.Pool, acquireTimeout time.Duration) *Provider {
	return &Provider{pool: pool, timeout: acquireTimeout}
}

// Session is a single unit-of-work's borrowed connection. Sessions are not
// safe for concurrent use and must be closed when the unit of work ends.
type Session struct {
	conn *pgxpool.Conn
	once sync.Once
}

// Open acquires a connection from the pool, waiting up to the configured
// timeout. Failures are classified: ErrPoolClosed after disposal,
// ErrConnection when the database is unreachable, ErrPoolExhausted when the
// wait times out. The provider never retries; retry policy belongs to the
// caller.
func (p *Provider) Open(ctx context.Context) (*Session, error) {
	acquireCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	conn, err := p.pool.Acquire(acquireCtx)
	if err != nil {
		return nil, classifyAcquireError(ctx, acquireCtx, err)
	}

	return &Session{conn: conn}, nil
}

// WithSession runs fn inside a session scope and guarantees the connection is
// returned to the pool on every exit path, including panic.
func (p *Provider) WithSession(ctx context.Context, fn func(ctx context.Context, s *Session) error) error {
	s, err := p.Open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(ctx, s)
}

// Conn exposes the underlying pooled connection for queries.
func (s *Session) Conn() *pgxpool.Conn {
	return s.conn
}

// WithTx executes fn within a transaction on this session's connection.
// If fn returns an error, the transaction is rolled back.
// If fn panics, the transaction is rolled back and the panic is re-raised.
// If fn succeeds, the transaction is committed.
func (s *Session) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

// Close returns the connection to the pool. Idempotent.
func (s *Session) Close() {
	s.once.Do(func() {
		s.conn.Release()
	})
}

// classifyAcquireError maps a raw acquire failure onto the session error
// taxonomy. A deadline on the acquire context that the parent did not cause
// means the pool was exhausted for the full wait window.
func classifyAcquireError(parent, acquire context.Context, err error) error {
	var connectErr *pgconn.ConnectError

	switch {
	case errors.Is(err, puddle.ErrClosedPool):
		return errors.Join(ErrPoolClosed, err)
	case errors.As(err, &connectErr):
		return errors.Join(ErrConnection, err)
	case errors.Is(acquire.Err(), context.DeadlineExceeded) && parent.Err() == nil:
		return errors.Join(ErrPoolExhausted, err)
	default:
		return err
	}
}
