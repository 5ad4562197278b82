package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/sakila-admin/internal/database"
)

// pingTables are counted by the ping command, in print order.
var pingTables = []string{"actor", "film", "city"}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the database connection and print row counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		db, err := database.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		for _, table := range pingTables {
			var n int64
			// table names come from pingTables, never from input
			if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
				return fmt.Errorf("count %s: %w", table, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", table, n)
		}
		return nil
	},
}
