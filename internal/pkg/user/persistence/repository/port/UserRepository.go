package repository

import (
	"context"

	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
)

// UserRepository persists accounts. Lookups return user.ErrUserNotFound on a
// miss and Create returns user.ErrUserExists on a duplicate email.
type UserRepository interface {
	Create(ctx context.Context, u user.User) error
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	// ListExcept returns every user but excludeID, ordered by name.
	ListExcept(ctx context.Context, excludeID string) ([]user.User, error)
}
