package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a unit of scheduled work.
type Job func(ctx context.Context) error

// SchedulerConfig controls where and how long jobs run.
type SchedulerConfig struct {
	Location *time.Location
	// Timeout bounds each job run. Zero means no deadline.
	Timeout time.Duration
}

// Scheduler triggers jobs on cron expressions. Runs of the same job are not
// serialized: a slow run may overlap with the next trigger.
type Scheduler struct {
	cron   *cron.Cron
	cfg    SchedulerConfig
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler(cfg SchedulerConfig, logger *zap.Logger) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(cfg.Location)),
		cfg:    cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register adds a job under a standard five-field cron spec or a descriptor such as "@daily".
func (s *Scheduler) Register(name, spec string, job Job) error {
	if job == nil {
		return fmt.Errorf("job %s is nil", name)
	}
	_, err := s.cron.AddFunc(spec, func() {
		s.runJob(name, job)
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	s.logger.Info("job scheduled", zap.String("job", name), zap.String("spec", spec), zap.String("tz", s.cfg.Location.String()))
	return nil
}

func (s *Scheduler) runJob(name string, job Job) {
	ctx := s.ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	started := time.Now()
	if err := job(ctx); err != nil {
		s.logger.Error("scheduled job failed", zap.String("job", name), zap.Duration("elapsed", time.Since(started)), zap.Error(err))
		return
	}
	s.logger.Info("scheduled job finished", zap.String("job", name), zap.Duration("elapsed", time.Since(started)))
}

// Start launches the cron scheduler.
func (s *Scheduler) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops triggering new runs and waits for running jobs or ctx, whichever comes first.
// Jobs still running when ctx expires are cancelled.
func (s *Scheduler) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		s.cancel()
	}
	s.cancel()
	s.logger.Info("scheduler stopped")
}

// Next returns the next activation time of every registered job.
func (s *Scheduler) Next() []time.Time {
	entries := s.cron.Entries()
	out := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Next)
	}
	return out
}
