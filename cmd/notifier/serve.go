package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/tasknotify/api/handler"
	"github.com/fastygo/tasknotify/internal/config"
	pgInfra "github.com/fastygo/tasknotify/internal/infrastructure/postgres"
	"github.com/fastygo/tasknotify/internal/middleware"
	"github.com/fastygo/tasknotify/internal/router"
	"github.com/fastygo/tasknotify/internal/services"
	"github.com/fastygo/tasknotify/internal/services/lifecycle"
	"github.com/fastygo/tasknotify/pkg/httpcontext"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the sweep scheduler and the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, zapLogger, err := bootstrap()
			if err != nil {
				return err
			}
			defer zapLogger.Sync()
			return serve(cmd.Context(), cfg, zapLogger)
		},
	}
}

func serve(parent context.Context, cfg *config.Config, zapLogger *zap.Logger) error {
	appCtx, cancel := context.WithCancel(parent)
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(appCtx, cancel)
	defer func() {
		if err := manager.Shutdown(context.Background()); err != nil {
			zapLogger.Error("graceful shutdown error", zap.Error(err))
		}
	}()

	if cfg.Store.Backend == config.StoreBackendPostgres {
		if err := pgInfra.RunMigrations(cfg.Database, cfg.Migrations, zapLogger); err != nil {
			return err
		}
	}

	app, err := build(appCtx, cfg, zapLogger, manager)
	if err != nil {
		return err
	}

	app.monitor.Start()
	manager.Register("monitor", func(context.Context) error {
		app.monitor.Stop()
		return nil
	})

	scheduler := services.NewScheduler(services.SchedulerConfig{
		Location: cfg.Location(),
		Timeout:  cfg.Sweep.Timeout,
	}, zapLogger)
	if err := scheduler.Register("overdue_sweep", cfg.Sweep.Schedule, sweepJob(app.sweep, zapLogger)); err != nil {
		return err
	}
	if app.bolt != nil {
		if err := scheduler.Register("ledger_prune", "@daily", pruneJob(app.bolt, cfg.Ledger.TTL, zapLogger)); err != nil {
			return err
		}
	}
	scheduler.Start()
	manager.Register("scheduler", func(ctx context.Context) error {
		scheduler.Stop(ctx)
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	handlers := router.Handlers{
		Health: apiHandler.NewHealthHandler(app.monitor, ctxAdapter, zapLogger),
		Sweep:  apiHandler.NewSweepHandler(app.sweep, ctxAdapter, zapLogger),
	}
	r := router.New(handlers, middleware.JWTAuth(cfg.JWT.Secret, zapLogger))

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Error("server crashed", zap.Error(err))
			cancel()
		}
	}()
	manager.Register("http_server", func(context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()
	return nil
}
