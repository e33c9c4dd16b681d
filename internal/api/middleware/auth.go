package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/walletmock/wallet-api/internal/core/domain"
)

// TokenKey is the echo context key holding the bearer token.
const TokenKey = "token"

// Bearer extracts the token of an "Authorization: Bearer <token>" header and
// stores it under TokenKey. Requests without a token stop here with
// domain.ErrMissingToken; checking the token is left to the services.
func Bearer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return domain.ErrMissingToken
			}
			c.Set(TokenKey, token)
			return next(c)
		}
	}
}

// bearerToken returns the credentials of a Bearer authorization header. The
// scheme is matched case-insensitively.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
