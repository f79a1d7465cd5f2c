package ports

import (
	"context"
	"errors"

	"github.com/solcrm/pipeline-api/internal/domains/admin/domain"
)

// ErrSessionNotFound signals a lookup for a token with no stored session.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore abstracts session persistence keyed by token.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	// PurgeExpired removes sessions past their expiry and reports how
	// many were deleted. Used for housekeeping or cron.
	PurgeExpired(ctx context.Context) (int64, error)
}
