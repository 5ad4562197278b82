package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/sakila-admin/internal/logging"
	"github.com/iliyamo/sakila-admin/internal/queue"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Append catalog change events from RabbitMQ to the audit log",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logging.Info().Str("path", cfg.AuditLogPath).Msg("consuming catalog events")
		err := queue.StartCatalogConsumer(ctx, cfg.AMQPURL, cfg.AuditLogPath)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
