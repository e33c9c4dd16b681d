package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/walletmock/wallet-api/internal/api/middleware"
)

// ctxToken returns the bearer token stored by middleware.Bearer. An empty
// result makes the service answer with domain.ErrMissingToken.
func ctxToken(c echo.Context) string {
	token, _ := c.Get(middleware.TokenKey).(string)
	return token
}
