// Command server runs the expense API service.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/expensio/api/internal/config"
	"github.com/expensio/api/internal/database"
	"github.com/expensio/api/internal/logger"
	"github.com/expensio/api/internal/middleware"
	"github.com/expensio/api/internal/server"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logCfg := logger.Config{Level: logger.ParseLevel(settings.LogLevel)}
	if err := env.Parse(&logCfg); err != nil {
		slog.Error("failed to load logger configuration", slog.Any("error", err))
		os.Exit(1)
	}
	log := logger.New(logCfg, middleware.RequestIDExtractor())

	ctx := context.Background()

	// The pool is created lazily: startup succeeds even if the database is
	// down, and /health stays green while /health/db reports the outage.
	pool, err := database.Connect(ctx, settings)
	if err != nil {
		log.Error("failed to configure database pool", slog.Any("error", err))
		os.Exit(1)
	}

	sessions := database.NewProvider(pool, settings.Timeout())
	router := server.NewRouter(settings, database.Healthcheck(sessions), log)

	log.Info("starting",
		slog.String("env", settings.Env),
		slog.Bool("debug", settings.Debug),
		slog.String("address", settings.Addr()),
	)

	err = server.Run(ctx, server.Config{
		Addr:    settings.Addr(),
		Handler: router,
		Logger:  log,
		ShutdownHooks: []func(context.Context) error{
			database.Shutdown(pool),
		},
	})
	if err != nil {
		log.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}
