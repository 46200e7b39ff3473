package sweep

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/tasknotify/domain"
	"github.com/fastygo/tasknotify/repository"
)

// InvalidTask is a record that could not be classified.
type InvalidTask struct {
	ID  string
	Err error
}

// ScanResult partitions the task collection at a reference time.
type ScanResult struct {
	Total   int
	Overdue []domain.OverdueTask
	Invalid []InvalidTask
}

// Scanner loads every task and selects the overdue ones.
type Scanner struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func NewScanner(tasks repository.TaskRepository, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{tasks: tasks, logger: logger}
}

// Scan returns the overdue tasks in store order. A task is overdue when its
// due date is strictly before now. Records missing an id, owner or due date
// are reported in Invalid instead of failing the scan; only a store error is fatal.
func (s *Scanner) Scan(ctx context.Context, now time.Time) (*ScanResult, error) {
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	s.logger.Info("found tasks", zap.Int("total", len(tasks)))

	result := &ScanResult{
		Total:   len(tasks),
		Overdue: make([]domain.OverdueTask, 0),
	}
	for i := range tasks {
		task := &tasks[i]
		if err := task.CheckIntegrity(); err != nil {
			s.logger.Warn("skipping malformed task", zap.String("task_id", task.ID), zap.Error(err))
			result.Invalid = append(result.Invalid, InvalidTask{ID: task.ID, Err: err})
			continue
		}
		if task.IsOverdue(now) {
			result.Overdue = append(result.Overdue, task.Snapshot())
		}
	}
	return result, nil
}
