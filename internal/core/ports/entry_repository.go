package ports

import (
	"context"

	"github.com/walletmock/wallet-api/internal/core/domain"
)

// EntryRepository is the append-only ledger store.
type EntryRepository interface {
	Insert(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	// ListByUser returns the user's entries in insertion order.
	ListByUser(ctx context.Context, userID string) ([]*domain.Entry, error)
}
