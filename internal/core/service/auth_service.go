package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/walletmock/wallet-api/internal/api/metrics"
	"github.com/walletmock/wallet-api/internal/core/domain"
	"github.com/walletmock/wallet-api/internal/core/ports"
	"github.com/walletmock/wallet-api/internal/pkg/validation"
)

// DefaultBcryptCost is the number of bcrypt rounds used when none is configured.
const DefaultBcryptCost = 10

// AuthService implements registration and login.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionRepository
	tokens     *TokenIssuer
	validate   *validation.Validator
	bcryptCost int
	// dummyHash is compared against on unknown emails so both branches of
	// Login cost one bcrypt comparison.
	dummyHash  []byte
	compare    func(hash, password []byte) error
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	tokens *TokenIssuer,
	bcryptCost int,
	log zerolog.Logger,
) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = DefaultBcryptCost
	}
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("wallet-api-dummy-password"), bcryptCost)
	if err != nil {
		log.Warn().Err(err).Msg("failed to build dummy password hash")
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		validate:   validation.New(),
		bcryptCost: bcryptCost,
		dummyHash:  dummyHash,
		compare:    bcrypt.CompareHashAndPassword,
		log:        log,
	}
}

// Register validates the sign-up form, refuses taken names and emails, and
// stores the user with a bcrypt hash of the password. Nothing is hashed or
// written unless every check passes.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, in.Name, in.Email); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.log.Info().Err(err).Str("name", in.Name).Msg("registration refused")
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.UsersRegisteredTotal.Inc()
	s.log.Info().Str("user_id", created.ID).Str("name", created.Name).Msg("user registered")
	return created, nil
}

// ensureUnique checks the name before the email so a double collision reports the name.
func (s *AuthService) ensureUnique(ctx context.Context, name, email string) error {
	if _, err := s.users.FindByName(ctx, name); err == nil {
		return domain.ErrNameExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("register: lookup name: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("register: lookup email: %w", err)
	}
	return nil
}

// Login checks the credentials and returns the token of the user's session,
// creating the session on first login.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = s.compare(s.dummyHash, []byte(password))
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("login: %w", err)
	}

	if s.compare([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("login: issue token: %w", err)
	}

	session, err := s.sessions.FindOrCreate(ctx, &domain.Session{
		Token:     token,
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("login: session: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.log.Info().
		Str("user_id", user.ID).
		Bool("reused_session", session.Token != token).
		Msg("user logged in")
	return session.Token, nil
}
