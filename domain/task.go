package domain

import (
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Task represents a user-owned activity item as stored by the task collection.
type Task struct {
	ID          string     `json:"id" validate:"required"`
	UserID      string     `json:"user_id" validate:"required"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty" validate:"required"`
	CreatedAt   time.Time  `json:"created_at"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func taskValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// CheckIntegrity reports whether the record carries the fields a sweep depends on.
func (t *Task) CheckIntegrity() error {
	if t == nil {
		return NewError(ErrCodeInvalid, "task is nil")
	}
	if err := taskValidator().Struct(t); err != nil {
		return WrapError(ErrCodeInvalid, "malformed task "+t.ID, err)
	}
	return nil
}

// Validate enforces the rules applied when a task is created or edited.
func (t *Task) Validate() error {
	if err := t.CheckIntegrity(); err != nil {
		return err
	}
	if err := ValidateNonBlank("title", t.Title); err != nil {
		return err
	}
	return ValidateNonBlank("description", t.Description)
}

// IsOverdue reports whether the due date is strictly before now.
func (t *Task) IsOverdue(now time.Time) bool {
	return t != nil && t.DueDate != nil && t.DueDate.Before(now)
}

// Snapshot captures the fields reported for an overdue task.
func (t *Task) Snapshot() OverdueTask {
	snap := OverdueTask{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		UserID:      t.UserID,
	}
	if t.DueDate != nil {
		snap.DueDate = *t.DueDate
	}
	return snap
}

// ValidateNonBlank rejects empty or whitespace-only text.
func ValidateNonBlank(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewError(ErrCodeInvalid, field+" cannot be empty")
	}
	return nil
}
