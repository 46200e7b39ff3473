package repository

import (
	"context"

	"github.com/fastygo/tasknotify/domain"
)

// TaskRepository is the read side of the task collection used by the sweep.
type TaskRepository interface {
	// ListAll returns every stored task in the store's natural order.
	ListAll(ctx context.Context) ([]domain.Task, error)
	Ping(ctx context.Context) error
}
