package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Concrete errors wrap one of these so callers can branch on the kind.
var (
	ErrConflict = errors.New("conflict")
	ErrAuth     = errors.New("authentication failed")
)

var (
	ErrNameExists  = fmt.Errorf("name exists: %w", ErrConflict)
	ErrEmailExists = fmt.Errorf("email exists: %w", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrAuth)
	ErrMissingToken       = fmt.Errorf("missing token: %w", ErrAuth)
	ErrUnauthorized       = fmt.Errorf("unauthorized: %w", ErrAuth)
)

// Store lookups that found nothing.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
)

// FieldViolation describes one failed constraint on one input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated constraint of an input, not just the first.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Fields lists the names of the violated fields in order.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Field)
	}
	return out
}
