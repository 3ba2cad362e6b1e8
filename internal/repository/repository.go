package repository

import (
	"context"

	"github.com/jbj828/express-tdd/internal/domain"
)

// UserRepository persists users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	// TruncateUsers removes every user. Test suites only.
	TruncateUsers(ctx context.Context) error
}
