package ports

import (
	"context"

	"github.com/walletmock/wallet-api/internal/core/domain"
)

// SessionRepository persists login sessions.
type SessionRepository interface {
	// FindOrCreate atomically returns the session already owned by
	// candidate.UserID, or stores candidate when the user has none.
	FindOrCreate(ctx context.Context, candidate *domain.Session) (*domain.Session, error)
	// FindByToken returns domain.ErrSessionNotFound for unknown tokens.
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
}

// SessionCache is a best-effort token -> user id lookup in front of SessionRepository.
type SessionCache interface {
	Get(ctx context.Context, token string) (userID string, found bool, err error)
	Set(ctx context.Context, token, userID string) error
}
