package repository

import (
	"context"

	"github.com/fastygo/tasknotify/domain"
)

// UserRepository resolves accounts in the identity directory.
// GetByID returns domain.ErrUserNotFound for unknown ids.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
