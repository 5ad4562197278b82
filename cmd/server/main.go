package main // Entry point package

import (
	"fmt" // error output before the logger exists
	"os"  // exit codes

	"github.com/spf13/cobra" // command-line interface

	"github.com/iliyamo/sakila-admin/internal/config"  // environment configuration
	"github.com/iliyamo/sakila-admin/internal/logging" // zerolog setup
)

var (
	cfg      config.Config // loaded once by the root command
	logLevel string        // --log-level overrides LOG_LEVEL
)

var rootCmd = &cobra.Command{
	Use:           "sakila-admin",
	Short:         "Server-rendered admin for the sakila catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil { // read .env and the process environment
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(serveCmd, consumeCmd, pingCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err) // print and exit non-zero
		os.Exit(1)
	}
}
