package datastore

import (
	"context"
	"errors"
	"fmt"

	gds "cloud.google.com/go/datastore"

	"github.com/fastygo/tasknotify/domain"
	"github.com/fastygo/tasknotify/repository"
)

type userRepository struct {
	client    Client
	namespace string
}

// NewUserRepository returns a directory reading the User kind, keyed by account uid.
func NewUserRepository(client Client, namespace string) repository.UserRepository {
	return &userRepository{client: client, namespace: namespace}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrUserNotFound
	}
	key := gds.NameKey(KindUser, id, nil)
	key.Namespace = r.namespace

	var entity userEntity
	if err := r.client.Get(ctx, key, &entity); err != nil {
		if errors.Is(err, gds.ErrNoSuchEntity) {
			return nil, domain.ErrUserNotFound
		}
		if err := ignoreFieldMismatch(err); err != nil {
			return nil, fmt.Errorf("datastore get user: %w", err)
		}
	}
	return &domain.User{ID: id, Email: entity.Email}, nil
}
