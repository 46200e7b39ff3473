package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/tasknotify/internal/config"
	"github.com/fastygo/tasknotify/pkg/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "notifier",
		Short: "Overdue task notification service",
		Long: `notifier scans every stored task, finds the ones past their due date and
emails each owner a reminder.

COMMANDS:
  serve     run the daily sweep scheduler and the HTTP API
  sweep     run one sweep now and print the summary as JSON
  migrate   apply the postgres schema

Configuration is read from the environment (and an optional .env file).`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand(), newSweepCommand(), newMigrateCommand())
	return root
}

// bootstrap loads configuration and builds the process logger shared by every command.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config error: %w", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger error: %w", err)
	}
	return cfg, zapLogger.With(zap.String("app", cfg.AppName), zap.String("env", cfg.Environment)), nil
}
