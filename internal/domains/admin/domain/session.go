package domain

import "time"

// Session is the explicit admin session object. It replaces any ambient
// process-wide admin flag: components that gate admin affordances receive
// a Session and inspect IsAdmin.
type Session struct {
	Token     string
	Email     string
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry at the given
// instant. Sessions without an expiry never expire.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt)
}

// Clone returns a deep copy so stores can hand out sessions without
// sharing mutable state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
