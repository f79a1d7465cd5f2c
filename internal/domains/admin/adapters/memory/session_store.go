package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/solcrm/pipeline-api/internal/domains/admin/domain"
	"github.com/solcrm/pipeline-api/internal/domains/admin/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps sessions in process memory, used for development
// and tests.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	now      func() time.Time
}

// NewSessionStore constructs an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: map[string]*domain.Session{},
		now:      time.Now,
	}
}

// WithClock overrides the timestamp source, used by tests.
func (s *SessionStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Save stores a session keyed by token.
func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	if session == nil || session.Token == "" {
		return errors.New("session token is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session.Clone()
	return nil
}

// Get fetches a session if present.
func (s *SessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Delete removes a session by token.
func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return ports.ErrSessionNotFound
	}
	delete(s.sessions, token)
	return nil
}

// PurgeExpired removes all sessions past their expiry.
func (s *SessionStore) PurgeExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var purged int64
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			purged++
		}
	}
	return purged, nil
}
