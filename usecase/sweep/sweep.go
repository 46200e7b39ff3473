package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fastygo/tasknotify/domain"
	"github.com/fastygo/tasknotify/repository"
	"github.com/fastygo/tasknotify/usecase/notify"
)

// Notifier sends one email and reports whether the channel accepted it.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) bool
}

// Dependencies are the collaborators a sweep runs against. They are built once
// at process start.
type Dependencies struct {
	Tasks    repository.TaskRepository
	Users    repository.UserRepository
	Notifier Notifier
	// Ledger is only consulted when the policy is domain.NotifyOnce.
	Ledger repository.NotificationLedger
	Logger *zap.Logger
	Clock  func() time.Time
}

// Config controls the fan-out of a sweep.
type Config struct {
	Concurrency int
	Policy      domain.NotifyPolicy
}

type outcome int

const (
	outcomeUnresolved outcome = iota
	outcomeSuppressed
	outcomeSendFailed
	outcomeDelivered
	outcomeAborted
)

// UseCase runs the overdue task notification sweep.
type UseCase struct {
	scanner  *Scanner
	resolver *OwnerResolver
	notifier Notifier
	ledger   repository.NotificationLedger
	logger   *zap.Logger
	clock    func() time.Time
	cfg      Config
}

func New(deps Dependencies, cfg Config) *UseCase {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	if !cfg.Policy.Valid() {
		cfg.Policy = domain.NotifyEveryRun
	}
	if deps.Ledger == nil {
		cfg.Policy = domain.NotifyEveryRun
	}

	return &UseCase{
		scanner:  NewScanner(deps.Tasks, deps.Logger),
		resolver: NewOwnerResolver(deps.Users),
		notifier: deps.Notifier,
		ledger:   deps.Ledger,
		logger:   deps.Logger,
		clock:    deps.Clock,
		cfg:      cfg,
	}
}

// Run executes one sweep. An error means the run aborted before a summary
// could be produced; per-task failures never surface here.
func (uc *UseCase) Run(ctx context.Context) (*domain.SweepResult, error) {
	now := uc.clock()
	runID := uuid.NewString()
	logger := uc.logger.With(zap.String("run_id", runID))

	logger.Info("starting overdue tasks check", zap.Time("now", now), zap.String("policy", string(uc.cfg.Policy)))

	scan, err := uc.scanner.Scan(ctx, now)
	if err != nil {
		logger.Error("overdue tasks check failed", zap.Error(err))
		return nil, fmt.Errorf("overdue sweep %s: %w", runID, err)
	}

	outcomes := make([]outcome, len(scan.Overdue))
	g := new(errgroup.Group)
	g.SetLimit(uc.cfg.Concurrency)
	for i, task := range scan.Overdue {
		i, task := i, task
		g.Go(func() error {
			outcomes[i] = uc.process(ctx, logger, task)
			return nil
		})
	}
	_ = g.Wait()

	result := &domain.SweepResult{
		RunID:        runID,
		StartedAt:    now,
		Success:      true,
		OverdueTasks: scan.Overdue,
		SkippedTasks: len(scan.Invalid),
	}
	for _, o := range outcomes {
		switch o {
		case outcomeDelivered:
			result.EmailsSent++
			result.EmailsDelivered++
		case outcomeSendFailed:
			result.EmailsSent++
		case outcomeUnresolved:
			result.OwnersUnresolved++
		case outcomeSuppressed:
			result.Suppressed++
		}
	}
	result.FinishedAt = uc.clock()

	logger.Info("email sending results",
		zap.Int("total", result.EmailsSent),
		zap.Int("successful", result.EmailsDelivered),
		zap.Int("overdue", len(result.OverdueTasks)),
		zap.Int("unresolved", result.OwnersUnresolved),
		zap.Int("suppressed", result.Suppressed),
		zap.Int("skipped", result.SkippedTasks))

	return result, nil
}

// process resolves the owner of one overdue task and notifies them.
// Nothing here may escape: every failure becomes an outcome.
func (uc *UseCase) process(ctx context.Context, base *zap.Logger, task domain.OverdueTask) (res outcome) {
	logger := base.With(zap.String("task_id", task.ID), zap.String("user_id", task.UserID))
	defer func() {
		if r := recover(); r != nil {
			logger.Error("task notification aborted", zap.Any("panic", r))
			res = outcomeAborted
		}
	}()

	email, err := uc.resolver.Resolve(ctx, task.UserID)
	if err != nil {
		logger.Error("error getting user or sending email", zap.Error(err))
		return outcomeUnresolved
	}

	if uc.cfg.Policy == domain.NotifyOnce && uc.alreadyNotified(ctx, logger, task) {
		logger.Debug("task already notified for this due date")
		return outcomeSuppressed
	}

	subject, body := notify.OverdueMessage(task)
	if !uc.notifier.Send(ctx, email, subject, body) {
		return outcomeSendFailed
	}

	if uc.cfg.Policy == domain.NotifyOnce {
		if err := uc.ledger.MarkNotified(ctx, task.ID, task.DueDate); err != nil {
			logger.Warn("failed to record notification", zap.Error(err))
		}
	}
	return outcomeDelivered
}

// alreadyNotified reports whether the ledger holds this exact due date. Ledger
// failures fall through to sending.
func (uc *UseCase) alreadyNotified(ctx context.Context, logger *zap.Logger, task domain.OverdueTask) bool {
	last, err := uc.ledger.LastNotified(ctx, task.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotNotified) {
			logger.Warn("notification ledger lookup failed", zap.Error(err))
		}
		return false
	}
	return last.Equal(task.DueDate)
}
