package domain

import "time"

// Session binds an opaque bearer token to the user that logged in with it.
// A user owns at most one session; it never expires.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}
