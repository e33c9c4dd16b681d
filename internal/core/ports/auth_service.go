package ports

import (
	"context"

	"github.com/walletmock/wallet-api/internal/core/domain"
)

// RegisterInput is the sign-up form as received from the client.
type RegisterInput struct {
	Name                 string `json:"name"                  validate:"required,min=3,max=10"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=3,max=15"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns the bearer token of the user's session.
	Login(ctx context.Context, email, password string) (string, error)
}
