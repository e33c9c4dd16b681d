package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/walletmock/wallet-api/internal/core/domain"
)

// EntryInput carries a new ledger entry. Amount is coerced to two decimals
// before it is validated.
type EntryInput struct {
	Amount      decimal.Decimal  `json:"amount"      validate:"gt=0"`
	Description string           `json:"description" validate:"required,max=15"`
	Type        domain.EntryType `json:"type"        validate:"oneof=deposit withdrawal"`
}

// WalletService records and lists ledger entries on behalf of a bearer token.
type WalletService interface {
	RecordEntry(ctx context.Context, token string, in EntryInput) (*domain.Entry, error)
	ListWallet(ctx context.Context, token string) ([]*domain.Entry, error)
}

// IdentityResolver maps a bearer token to the id of the user owning it.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}
