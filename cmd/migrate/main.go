// Command migrate applies the schema migrations shipped with the service.
//
// By default it connects to DATABASE_URL and executes all pending steps in a
// single transaction. With -sql it renders the steps as literal SQL text on
// stdout without opening a connection, for review or hand-off to a DBA tool.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/expensio/api/internal/config"
	"github.com/expensio/api/internal/database/migrate"
	"github.com/expensio/api/internal/database/migrations"
	"github.com/expensio/api/internal/logger"
)

func main() {
	sqlOnly := flag.Bool("sql", false, "render migrations as SQL text without connecting (offline mode)")
	table := flag.String("table", migrate.DefaultTable, "schema version tracking table")
	flag.Parse()

	settings, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Logs go to stderr so offline SQL output on stdout stays clean.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logger.ParseLevel(settings.LogLevel),
	}))

	steps, err := migrate.Collect(migrations.FS)
	if err != nil {
		log.Error("failed to collect migrations", slog.Any("error", err))
		os.Exit(1)
	}

	runner := migrate.NewRunner(settings.PoolURL(), steps,
		migrate.WithTable(*table),
		migrate.WithLogger(log),
	)

	if *sqlOnly {
		if err := runner.Offline(os.Stdout); err != nil {
			log.Error("failed to render migrations", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.Online(ctx); err != nil {
		log.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("migrations applied", slog.Int("steps", len(steps)))
}
