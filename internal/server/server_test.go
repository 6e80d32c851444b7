package server_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/expensio/api/internal/logger"
	"github.com/expensio/api/internal/server"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("serves until cancelled and runs shutdown hooks in order", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		var order []string
		hook := func(name string) func(context.Context) error {
			return func(context.Context) error {
				order = append(order, name)
				return nil
			}
		}

		done := make(chan error, 1)
		go func() {
			done <- server.Run(ctx, server.Config{
				Addr:    "127.0.0.1:0",
				Handler: http.NewServeMux(),
				Logger:  logger.NewNope(),
				ShutdownHooks: []func(context.Context) error{
					hook("drain sessions"),
					hook("close pool"),
				},
			})
		}()

		// Give the listener a moment to come up, then trigger shutdown.
		time.Sleep(100 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not shut down")
		}

		require.Equal(t, []string{"drain sessions", "close pool"}, order)
	})

	t.Run("returns hook failures", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- server.Run(ctx, server.Config{
				Addr:    "127.0.0.1:0",
				Handler: http.NewServeMux(),
				Logger:  logger.NewNope(),
				ShutdownHooks: []func(context.Context) error{
					func(context.Context) error { return fmt.Errorf("pool already closed") },
				},
			})
		}()

		time.Sleep(100 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.ErrorContains(t, err, "pool already closed")
		case <-time.After(5 * time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("fails fast on an unusable address", func(t *testing.T) {
		t.Parallel()

		err := server.Run(context.Background(), server.Config{
			Addr:    "127.0.0.1:-1",
			Handler: http.NewServeMux(),
			Logger:  logger.NewNope(),
		})
		require.Error(t, err)
	})
}
