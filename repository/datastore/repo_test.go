package datastore

import (
	"context"
	"errors"
	"testing"
	"time"

	gds "cloud.google.com/go/datastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasknotify/domain"
)

type fakeClient struct {
	keys     []*gds.Key
	tasks    []taskEntity
	users    map[string]userEntity
	getAllFn func() error
	getErr   error
	queries  int
}

func (f *fakeClient) GetAll(_ context.Context, _ *gds.Query, dst interface{}) ([]*gds.Key, error) {
	f.queries++
	if f.getAllFn != nil {
		if err := f.getAllFn(); err != nil {
			return nil, err
		}
	}
	if out, ok := dst.(*[]taskEntity); ok {
		*out = append(*out, f.tasks...)
	}
	return f.keys, nil
}

func (f *fakeClient) Get(_ context.Context, key *gds.Key, dst interface{}) error {
	if f.getErr != nil {
		return f.getErr
	}
	u, ok := f.users[key.Name]
	if !ok {
		return gds.ErrNoSuchEntity
	}
	*dst.(*userEntity) = u
	return nil
}

func TestTaskRepository_ListAll(t *testing.T) {
	due := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	client := &fakeClient{
		keys: []*gds.Key{gds.NameKey(KindTask, "abc", nil), gds.IDKey(KindTask, 42, nil)},
		tasks: []taskEntity{
			{UserID: "u1", Title: "one", DueDate: due},
			{UserID: "u2", Title: "two"},
		},
	}

	tasks, err := NewTaskRepository(client, "").ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "abc", tasks[0].ID)
	require.NotNil(t, tasks[0].DueDate)
	assert.True(t, tasks[0].DueDate.Equal(due))
	assert.Equal(t, "42", tasks[1].ID)
	assert.Nil(t, tasks[1].DueDate, "missing dueDate must stay absent")
}

func TestTaskRepository_ListAllErrors(t *testing.T) {
	client := &fakeClient{getAllFn: func() error { return errors.New("unavailable") }}

	_, err := NewTaskRepository(client, "").ListAll(context.Background())
	require.Error(t, err)

	client.getAllFn = func() error { return &gds.ErrFieldMismatch{FieldName: "priority", Reason: "no such struct field"} }
	_, err = NewTaskRepository(client, "").ListAll(context.Background())
	assert.NoError(t, err)
}

func TestUserRepository_GetByID(t *testing.T) {
	client := &fakeClient{users: map[string]userEntity{"u1": {Email: "ada@example.com"}}}
	repo := NewUserRepository(client, "tenant")
	ctx := context.Background()

	user, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	_, err = repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.GetByID(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	client.getErr = errors.New("deadline exceeded")
	_, err = repo.GetByID(ctx, "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUserNotFound)
}
