package sweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastygo/tasknotify/domain"
	"github.com/fastygo/tasknotify/repository"
)

// OwnerResolver maps a task owner id to a contact email.
type OwnerResolver struct {
	users repository.UserRepository
}

func NewOwnerResolver(users repository.UserRepository) *OwnerResolver {
	return &OwnerResolver{users: users}
}

// Resolve returns an error matching domain.ErrOwnerNotFound when the account
// is gone or has no email address.
func (r *OwnerResolver) Resolve(ctx context.Context, ownerID string) (string, error) {
	user, err := r.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.WrapError(domain.ErrCodeNotFound, fmt.Sprintf("owner %s", ownerID), domain.ErrOwnerNotFound)
		}
		return "", fmt.Errorf("resolve owner %s: %w", ownerID, err)
	}
	if !user.HasContact() {
		return "", domain.WrapError(domain.ErrCodeNotFound, fmt.Sprintf("owner %s has no email", ownerID), domain.ErrOwnerNotFound)
	}
	return user.Email, nil
}
