package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/tasknotify/internal/services/lifecycle"
)

func newSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one overdue sweep and print the summary",
		Long: `Run one overdue sweep immediately and write the summary JSON to stdout.
Exits non-zero when the task store cannot be read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, zapLogger, err := bootstrap()
			if err != nil {
				return err
			}
			defer zapLogger.Sync()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if cfg.Sweep.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Sweep.Timeout)
				defer cancel()
			}

			manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
			defer func() {
				if err := manager.Shutdown(context.Background()); err != nil {
					zapLogger.Error("shutdown error", zap.Error(err))
				}
			}()

			app, err := build(ctx, cfg, zapLogger, manager)
			if err != nil {
				return err
			}

			result, err := app.sweep.Run(ctx)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}
