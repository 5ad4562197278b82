package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/sakila-admin/internal/config"
	"github.com/iliyamo/sakila-admin/internal/database"
	"github.com/iliyamo/sakila-admin/internal/handler"
	"github.com/iliyamo/sakila-admin/internal/logging"
	"github.com/iliyamo/sakila-admin/internal/queue"
	"github.com/iliyamo/sakila-admin/internal/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		logging.Warn().Msg("redis unavailable, page cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	var events queue.Publisher = queue.NopPublisher{}
	if cfg.Events {
		events = queue.NewAMQPPublisher(cfg.AMQPURL)
	}

	e := router.New(router.Options{
		Handler:   handler.New(db, events),
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
