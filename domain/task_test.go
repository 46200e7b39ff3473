package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Time) *time.Time { return &d }

	tests := []struct {
		name string
		due  *time.Time
		want bool
	}{
		{name: "should be overdue when due yesterday", due: at(now.Add(-24 * time.Hour)), want: true},
		{name: "should be overdue when due one minute ago", due: at(now.Add(-time.Minute)), want: true},
		{name: "should not be overdue when due exactly now", due: at(now), want: false},
		{name: "should not be overdue when due in an hour", due: at(now.Add(time.Hour)), want: false},
		{name: "should not be overdue without a due date", due: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{ID: "t1", UserID: "u1", DueDate: tt.due}
			assert.Equal(t, tt.want, task.IsOverdue(now))
		})
	}
}

func TestTask_CheckIntegrity(t *testing.T) {
	due := time.Now()

	tests := []struct {
		name    string
		task    *Task
		wantErr bool
	}{
		{name: "should accept a complete record", task: &Task{ID: "t1", UserID: "u1", DueDate: &due}},
		{name: "should reject a missing due date", task: &Task{ID: "t1", UserID: "u1"}, wantErr: true},
		{name: "should reject a missing owner", task: &Task{ID: "t1", DueDate: &due}, wantErr: true},
		{name: "should reject a missing id", task: &Task{UserID: "u1", DueDate: &due}, wantErr: true},
		{name: "should reject nil", task: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.CheckIntegrity()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsDomainError(err, ErrCodeInvalid))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTask_Validate(t *testing.T) {
	due := time.Now()
	task := &Task{ID: "t1", UserID: "u1", Title: "  ", Description: "write report", DueDate: &due}

	err := task.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")

	task.Title = "Report"
	assert.NoError(t, task.Validate())

	task.Description = "\t\n"
	err = task.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description")
}

func TestTask_Snapshot(t *testing.T) {
	due := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	task := &Task{ID: "t1", UserID: "u1", Title: "Pay rent", Description: "landlord", DueDate: &due}

	snap := task.Snapshot()

	assert.Equal(t, OverdueTask{ID: "t1", Title: "Pay rent", Description: "landlord", DueDate: due, UserID: "u1"}, snap)
}

func TestIsDomainError(t *testing.T) {
	wrapped := WrapError(ErrCodeNotFound, "lookup", ErrUserNotFound)

	assert.True(t, IsDomainError(wrapped, ErrCodeNotFound))
	assert.False(t, IsDomainError(wrapped, ErrCodeInvalid))
	assert.ErrorIs(t, wrapped, ErrUserNotFound)
	assert.Equal(t, "lookup: user not found", wrapped.Error())
}
