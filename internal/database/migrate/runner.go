package migrate

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/expensio/api/internal/logger"
)

// DefaultTable is the schema version tracking table.
const DefaultTable = "schema_migrations"

// Runner applies an ordered sequence of migration steps against a target
// database. Exactly one mode runs per invocation: Offline renders SQL without
// touching the network, Online executes against one transient connection.
type Runner struct {
	url   string
	table string
	steps []Step
	log   *slog.Logger
}

// Option configures the Runner.
type Option func(*Runner)

// WithTable overrides the version tracking table name.
func WithTable(name string) Option {
	return func(r *Runner) {
		if name != "" {
			r.table = name
		}
	}
}

// WithLogger sets the logger for per-step progress.
func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRunner builds a runner for the given target URL and resolved steps.
func NewRunner(url string, steps []Step, opts ...Option) *Runner {
	r := &Runner{
		url:   url,
		table: DefaultTable,
		steps: steps,
		log:   logger.NewNope(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Offline renders every step as literal SQL text suitable for review or
// execution by a DBA tool. It never opens a connection, so it cannot know
// which versions are already applied; the emitted version-table inserts make
// re-runs detectable on the database side.
func (r *Runner) Offline(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "-- Schema migration script, generated in offline mode.")
	fmt.Fprintln(bw, "-- Literal SQL only; review before applying.")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "BEGIN;")
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "%s\n\n", versionTableDDL(r.table))

	for _, step := range r.steps {
		fmt.Fprintf(bw, "-- %s (version %d)\n", step.Source, step.Version)
		fmt.Fprintf(bw, "%s\n", step.SQL)
		fmt.Fprintf(bw, "%s\n\n", versionInsert(r.table, step.Version))
	}

	fmt.Fprintln(bw, "COMMIT;")

	return bw.Flush()
}

// Online opens one transient connection (deliberately not the service's
// long-lived pool), applies all pending steps inside a single transaction and
// records their versions. If any step fails the whole transaction rolls back:
// no partial schema change survives.
//
// The all-or-nothing guarantee relies on PostgreSQL's transactional DDL;
// statements that refuse to run in a transaction (such as CREATE INDEX
// CONCURRENTLY) fail the run rather than escaping it.
func (r *Runner) Online(ctx context.Context) error {
	cfg, err := pgx.ParseConfig(r.url)
	if err != nil {
		return errors.Join(ErrInvalidTarget, err)
	}

	// Same statement-cache posture as the service pool; a migration runner
	// behind PgBouncer must not rely on prepared statements either.
	cfg.DefaultQueryExecMode = pgx.QueryExecModeExec
	cfg.StatementCacheCapacity = 0
	cfg.DescriptionCacheCapacity = 0

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return errors.Join(ErrConnect, err)
	}
	defer func() { _ = conn.Close(ctx) }()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return errors.Join(ErrConnect, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	fail := func(cause error) error {
		_ = tx.Rollback(ctx)
		return errors.Join(ErrMigrationFailed, cause)
	}

	if _, err := tx.Exec(ctx, versionTableDDL(r.table)); err != nil {
		return fail(fmt.Errorf("version table: %w", err))
	}

	applied, err := appliedVersions(ctx, tx, r.table)
	if err != nil {
		return fail(fmt.Errorf("version table: %w", err))
	}

	for _, step := range r.steps {
		if applied[step.Version] {
			r.log.DebugContext(ctx, "migration already applied",
				slog.String("source", step.Source),
				slog.Int64("version", step.Version),
			)
			continue
		}

		for _, stmt := range step.Statements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fail(fmt.Errorf("step %s (version %d): %w", step.Source, step.Version, err))
			}
		}

		if _, err := tx.Exec(ctx, versionInsert(r.table, step.Version)); err != nil {
			return fail(fmt.Errorf("step %s (version %d): %w", step.Source, step.Version, err))
		}

		r.log.InfoContext(ctx, "applied migration",
			slog.String("source", step.Source),
			slog.Int64("version", step.Version),
		)
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	return nil
}

func versionTableDDL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id serial PRIMARY KEY,
	version_id bigint NOT NULL,
	is_applied boolean NOT NULL,
	tstamp timestamp NOT NULL DEFAULT now()
);`, table)
}

func versionInsert(table string, version int64) string {
	// Offline output must carry no bind placeholders, so values are inlined.
	return fmt.Sprintf("INSERT INTO %s (version_id, is_applied) VALUES (%d, true);", table, version)
}

func appliedVersions(ctx context.Context, tx pgx.Tx, table string) (map[int64]bool, error) {
	rows, err := tx.Query(ctx, fmt.Sprintf("SELECT version_id FROM %s WHERE is_applied", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int64]bool)
	for rows.Next() {
		var version int64
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}
