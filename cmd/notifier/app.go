package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/tasknotify/internal/config"
	dsInfra "github.com/fastygo/tasknotify/internal/infrastructure/datastore"
	"github.com/fastygo/tasknotify/internal/infrastructure/email"
	ledgerInfra "github.com/fastygo/tasknotify/internal/infrastructure/ledger"
	"github.com/fastygo/tasknotify/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/tasknotify/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/tasknotify/internal/infrastructure/redis"
	"github.com/fastygo/tasknotify/internal/services/lifecycle"
	"github.com/fastygo/tasknotify/repository"
	dsRepo "github.com/fastygo/tasknotify/repository/datastore"
	pgRepo "github.com/fastygo/tasknotify/repository/postgres"
	redisRepo "github.com/fastygo/tasknotify/repository/redis"
	"github.com/fastygo/tasknotify/usecase/notify"
	"github.com/fastygo/tasknotify/usecase/sweep"
)

// components are the long-lived collaborators built once per process.
type components struct {
	sweep   *sweep.UseCase
	monitor *monitor.Monitor
	// bolt is set only when the bolt ledger backend is active.
	bolt *ledgerInfra.Store
}

// build wires stores, ledger and mailer from configuration. Every opened
// resource registers its close hook with manager.
func build(ctx context.Context, cfg *config.Config, logger *zap.Logger, manager *lifecycle.Manager) (*components, error) {
	mon := monitor.New(10*time.Second, logger)
	out := &components{monitor: mon}

	var (
		tasks repository.TaskRepository
		users repository.UserRepository
	)
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres connection failed: %w", err)
		}
		manager.Register("postgres", func(context.Context) error {
			pool.Close()
			return nil
		})
		tasks = pgRepo.NewTaskRepository(pool)
		users = pgRepo.NewUserRepository(pool)
		mon.Add("postgres", pool.Ping)
	case config.StoreBackendDatastore:
		client, err := dsInfra.NewClient(ctx, cfg.Datastore, logger)
		if err != nil {
			return nil, fmt.Errorf("datastore connection failed: %w", err)
		}
		manager.Register("datastore", func(context.Context) error {
			return client.Close()
		})
		tasks = dsRepo.NewTaskRepository(client, cfg.Datastore.Namespace)
		users = dsRepo.NewUserRepository(client, cfg.Datastore.Namespace)
		mon.Add("datastore", tasks.Ping)
	}

	var ledger repository.NotificationLedger
	if cfg.UsesLedger() {
		switch cfg.Ledger.Backend {
		case config.LedgerBackendRedis:
			client, err := redisInfra.NewClient(ctx, cfg.Redis)
			if err != nil {
				return nil, fmt.Errorf("redis connection failed: %w", err)
			}
			manager.Register("redis", func(context.Context) error {
				return client.Close()
			})
			ledger = redisRepo.NewLedgerRepository(client, cfg.Ledger.TTL)
		case config.LedgerBackendBolt:
			store, err := ledgerInfra.Open(cfg.Ledger.Path, "")
			if err != nil {
				return nil, fmt.Errorf("failed to open ledger store: %w", err)
			}
			manager.Register("ledger", func(context.Context) error {
				return store.Close()
			})
			ledger = store
			out.bolt = store
		}
		mon.Add("ledger", ledger.Ping)
	}

	var mailer notify.Mailer
	switch cfg.Email.Driver {
	case config.EmailDriverSES:
		client, err := email.NewSESClient(ctx, cfg.Email)
		if err != nil {
			return nil, fmt.Errorf("ses client: %w", err)
		}
		mailer = email.NewSESMailer(client, cfg.Email.From, logger)
	default:
		mailer = email.NewLogMailer(logger)
	}

	out.sweep = sweep.New(sweep.Dependencies{
		Tasks:    tasks,
		Users:    users,
		Notifier: notify.New(mailer, logger),
		Ledger:   ledger,
		Logger:   logger,
	}, sweep.Config{
		Concurrency: cfg.Sweep.Concurrency,
		Policy:      cfg.Sweep.Policy,
	})

	logger.Info("components ready",
		zap.String("store", cfg.Store.Backend),
		zap.String("policy", string(cfg.Sweep.Policy)),
		zap.String("email", cfg.Email.Driver),
		zap.Int("concurrency", cfg.Sweep.Concurrency))
	return out, nil
}

// sweepJob adapts a sweep run to the scheduler and logs its summary.
func sweepJob(uc *sweep.UseCase, logger *zap.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		result, err := uc.Run(ctx)
		if err != nil {
			return err
		}
		logger.Info("overdue sweep summary",
			zap.String("run_id", result.RunID),
			zap.Int("overdue", len(result.OverdueTasks)),
			zap.Int("emails_sent", result.EmailsSent),
			zap.Int("emails_delivered", result.EmailsDelivered))
		return nil
	}
}

// pruneJob drops bolt ledger entries older than ttl.
func pruneJob(store *ledgerInfra.Store, ttl time.Duration, logger *zap.Logger) func(ctx context.Context) error {
	return func(context.Context) error {
		removed, err := store.Cleanup(time.Now().Add(-ttl))
		if err != nil {
			return err
		}
		logger.Info("ledger pruned", zap.Int("removed", removed))
		return nil
	}
}
