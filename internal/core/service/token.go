package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errTokenSecret = errors.New("token secret must not be empty")

// TokenIssuer mints session tokens. A token is an HS256-signed JWT whose jti is
// a random UUID and whose subject is the user id. Tokens carry no expiry;
// clients treat them as opaque strings and the server still requires a stored
// session for every request.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errTokenSecret
	}
	return &TokenIssuer{secret: []byte(secret)}, nil
}

// Issue returns a fresh token for userID.
func (ti *TokenIssuer) Issue(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:      uuid.NewString(),
		Subject: userID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
}

// Subject verifies the signature of token and returns the user id it was minted for.
func (ti *TokenIssuer) Subject(token string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return ti.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.Subject == "" || claims.ID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}
