package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/walletmock/wallet-api/internal/api/metrics"
	"github.com/walletmock/wallet-api/internal/core/domain"
	"github.com/walletmock/wallet-api/internal/core/ports"
)

type identityResolver struct {
	sessions ports.SessionRepository
	cache    ports.SessionCache
	tokens   *TokenIssuer
	log      zerolog.Logger
}

// NewIdentityResolver returns the token resolver shared by every ledger
// operation. cache may be nil.
func NewIdentityResolver(
	sessions ports.SessionRepository,
	cache ports.SessionCache,
	tokens *TokenIssuer,
	log zerolog.Logger,
) ports.IdentityResolver {
	return &identityResolver{sessions: sessions, cache: cache, tokens: tokens, log: log}
}

// Resolve maps a bearer token to the id of the user owning its session.
func (r *identityResolver) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrMissingToken
	}

	subject, err := r.tokens.Subject(token)
	if err != nil {
		r.log.Debug().Err(err).Msg("rejected malformed token")
		return "", domain.ErrUnauthorized
	}

	if r.cache != nil {
		userID, found, err := r.cache.Get(ctx, token)
		switch {
		case err != nil:
			metrics.SessionCacheLookupsTotal.WithLabelValues("error").Inc()
			r.log.Warn().Err(err).Msg("session cache lookup failed, falling back to store")
		case found:
			metrics.SessionCacheLookupsTotal.WithLabelValues("hit").Inc()
			if userID != subject {
				return "", domain.ErrUnauthorized
			}
			return userID, nil
		default:
			metrics.SessionCacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	session, err := r.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("resolve identity: %w", err)
	}
	if session.UserID != subject {
		r.log.Warn().Str("user_id", session.UserID).Msg("token subject does not match session owner")
		return "", domain.ErrUnauthorized
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, token, session.UserID); err != nil {
			r.log.Warn().Err(err).Str("user_id", session.UserID).Msg("failed to cache session")
		}
	}
	return session.UserID, nil
}
