package ports

import (
	"context"
	"errors"

	"github.com/solcrm/pipeline-api/internal/domains/admin/domain"
)

var (
	// ErrInvalidCredentials signals a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionExpired signals that a previously issued session is past
	// its expiry and has been discarded.
	ErrSessionExpired = errors.New("session expired")
)

// Service exposes the admin session use cases.
type Service interface {
	// Login validates the credential pair and issues a new session.
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	// Logout discards the session identified by token. Unknown tokens
	// are not an error.
	Logout(ctx context.Context, token string) error
	// Verify resolves a token to its live session.
	Verify(ctx context.Context, token string) (*domain.Session, error)
}
