package datastore

import (
	"context"
	"fmt"

	gds "cloud.google.com/go/datastore"

	"github.com/fastygo/tasknotify/domain"
	"github.com/fastygo/tasknotify/repository"
)

type taskRepository struct {
	client    Client
	namespace string
}

// NewTaskRepository returns a Cloud Datastore backed TaskRepository over the Task kind.
func NewTaskRepository(client Client, namespace string) repository.TaskRepository {
	return &taskRepository{client: client, namespace: namespace}
}

func (r *taskRepository) ListAll(ctx context.Context) ([]domain.Task, error) {
	var entities []taskEntity
	keys, err := r.client.GetAll(ctx, gds.NewQuery(KindTask).Namespace(r.namespace), &entities)
	if err := ignoreFieldMismatch(err); err != nil {
		return nil, fmt.Errorf("datastore list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(keys))
	for i, key := range keys {
		tasks = append(tasks, toTask(key, entities[i]))
	}
	return tasks, nil
}

func (r *taskRepository) Ping(ctx context.Context) error {
	_, err := r.client.GetAll(ctx, gds.NewQuery(KindTask).Namespace(r.namespace).KeysOnly().Limit(1), nil)
	return err
}

func toTask(key *gds.Key, e taskEntity) domain.Task {
	task := domain.Task{
		ID:          keyID(key),
		UserID:      e.UserID,
		Title:       e.Title,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
	// an absent dueDate property loads as the zero time
	if !e.DueDate.IsZero() {
		due := e.DueDate
		task.DueDate = &due
	}
	return task
}

func keyID(key *gds.Key) string {
	if key == nil {
		return ""
	}
	if key.Name != "" {
		return key.Name
	}
	if key.ID != 0 {
		return fmt.Sprintf("%d", key.ID)
	}
	return ""
}
