package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/tasknotify/domain"
	"github.com/fastygo/tasknotify/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

// ListAll reads the whole tasks table. No filtering is pushed to the database:
// classification happens in the sweep against its own clock.
func (r *taskRepository) ListAll(ctx context.Context) ([]domain.Task, error) {
	const query = `
	SELECT id, user_id, title, description, due_date, created_at
	FROM tasks
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapQueryErr("list tasks", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, wrapQueryErr("scan task", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, wrapQueryErr("iterate tasks", rows.Err())
}

func (r *taskRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task      domain.Task
		due       *time.Time
		createdAt *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&due,
		&createdAt,
	); err != nil {
		return nil, err
	}

	task.DueDate = due
	if createdAt != nil {
		task.CreatedAt = *createdAt
	}
	return &task, nil
}
