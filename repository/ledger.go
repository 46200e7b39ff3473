package repository

import (
	"context"
	"time"
)

// NotificationLedger remembers which due date a task was last notified for.
type NotificationLedger interface {
	// LastNotified returns domain.ErrNotNotified when nothing is recorded.
	LastNotified(ctx context.Context, taskID string) (time.Time, error)
	MarkNotified(ctx context.Context, taskID string, dueDate time.Time) error
	Ping(ctx context.Context) error
}
