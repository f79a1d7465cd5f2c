package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/solcrm/pipeline-api/internal/domains/admin/domain"
	"github.com/solcrm/pipeline-api/internal/domains/admin/ports"
)

// DefaultSessionTTL is the session lifetime when none is configured.
const DefaultSessionTTL = 24 * time.Hour

// Credential is the configured admin login pair.
type Credential struct {
	Email    string
	Password string
}

// Service implements the admin session use cases against a session store.
type Service struct {
	sessions   ports.SessionStore
	credential Credential
	ttl        time.Duration
	now        func() time.Time
	newToken   func() string
}

// Option customizes the admin service.
type Option func(*Service)

// WithCredential overrides the accepted login pair.
func WithCredential(c Credential) Option {
	return func(s *Service) {
		if strings.TrimSpace(c.Email) != "" && c.Password != "" {
			s.credential = c
		}
	}
}

// WithTTL overrides the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTokenGenerator overrides token generation, used by tests.
func WithTokenGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newToken = gen
		}
	}
}

// NewService builds the admin session service.
func NewService(sessions ports.SessionStore, opts ...Option) *Service {
	s := &Service{
		sessions:   sessions,
		credential: Credential{Email: "admin@sol.com", Password: "987654"},
		ttl:        DefaultSessionTTL,
		now:        time.Now,
		newToken:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Login validates the credential pair and persists a fresh session.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ports.ErrInvalidCredentials
	}
	if email != s.credential.Email || password != s.credential.Password {
		return nil, ports.ErrInvalidCredentials
	}

	issued := s.now()
	session := &domain.Session{
		Token:     s.newToken(),
		Email:     email,
		IsAdmin:   true,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Logout discards the session. A token that is already gone is fine.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil && !errors.Is(err, ports.ErrSessionNotFound) {
		return err
	}
	return nil
}

// Verify resolves a token to its session, discarding it when expired.
func (s *Service) Verify(ctx context.Context, token string) (*domain.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ports.ErrSessionNotFound
	}
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ports.ErrSessionExpired
	}
	return session, nil
}

var _ ports.Service = (*Service)(nil)
