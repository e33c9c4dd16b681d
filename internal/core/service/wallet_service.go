package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/walletmock/wallet-api/internal/api/metrics"
	"github.com/walletmock/wallet-api/internal/core/domain"
	"github.com/walletmock/wallet-api/internal/core/ports"
	"github.com/walletmock/wallet-api/internal/pkg/validation"
)

type walletService struct {
	entries  ports.EntryRepository
	identity ports.IdentityResolver
	validate *validation.Validator
	now      func() time.Time
	log      zerolog.Logger
}

// NewWalletService returns a WalletService implementation.
func NewWalletService(
	entries ports.EntryRepository,
	identity ports.IdentityResolver,
	log zerolog.Logger,
) ports.WalletService {
	return &walletService{
		entries:  entries,
		identity: identity,
		validate: validation.New(),
		now:      time.Now,
		log:      log,
	}
}

// RecordEntry coerces and validates a new entry, resolves the caller and
// appends the entry to the caller's ledger.
func (s *walletService) RecordEntry(ctx context.Context, token string, in ports.EntryInput) (*domain.Entry, error) {
	if err := s.validateEntry(&in); err != nil {
		return nil, err
	}

	userID, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	entry, err := s.entries.Insert(ctx, &domain.Entry{
		UserID:      userID,
		Amount:      in.Amount,
		Description: in.Description,
		Type:        in.Type,
		Date:        domain.StampDate(now),
		CreatedAt:   now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("type", string(in.Type)).Msg("failed to record entry")
		return nil, fmt.Errorf("record entry: %w", err)
	}

	metrics.EntriesRecordedTotal.WithLabelValues(string(entry.Type)).Inc()
	s.log.Info().
		Str("user_id", userID).
		Str("type", string(entry.Type)).
		Str("amount", entry.Amount.StringFixed(domain.AmountPlaces)).
		Msg("entry recorded")
	return entry, nil
}

// validateEntry coerces the amount and checks every field. An amount outside
// domain.AmountInRange is reported without being coerced, next to the
// violations of the other fields.
func (s *walletService) validateEntry(in *ports.EntryInput) error {
	if domain.AmountInRange(in.Amount) {
		in.Amount = domain.CoerceAmount(in.Amount)
		return s.validate.Struct(*in)
	}

	out := &domain.ValidationError{Violations: []domain.FieldViolation{{
		Field:   "amount",
		Message: fmt.Sprintf("amount must have at most %d digits before the decimal point and %d in total",
			domain.MaxAmountIntegerDigits, domain.MaxAmountDigits),
	}}}
	err := s.validate.StructExcept(*in, "Amount")
	var ve *domain.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &ve):
		out.Violations = append(out.Violations, ve.Violations...)
	default:
		return err
	}
	return out
}

// ListWallet returns every entry of the caller in insertion order. A wallet
// without entries yields an empty slice.
func (s *walletService) ListWallet(ctx context.Context, token string) ([]*domain.Entry, error) {
	userID, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallet: %w", err)
	}
	if entries == nil {
		entries = []*domain.Entry{}
	}
	return entries, nil
}
