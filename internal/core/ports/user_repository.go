package ports

import (
	"context"

	"github.com/walletmock/wallet-api/internal/core/domain"
)

// UserRepository persists registered users. Find methods return
// domain.ErrUserNotFound when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByName(ctx context.Context, name string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
