package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	adminmemory "github.com/solcrm/pipeline-api/internal/domains/admin/adapters/memory"
	"github.com/solcrm/pipeline-api/internal/domains/admin/ports"
)

func TestLogin_Success(t *testing.T) {
	svc := NewService(adminmemory.NewSessionStore())

	session, err := svc.Login(context.Background(), "admin@sol.com", "987654")

	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.True(t, session.IsAdmin)
	require.Equal(t, "admin@sol.com", session.Email)
	require.True(t, session.ExpiresAt.After(session.IssuedAt))
}

func TestLogin_RejectsWrongCredentials(t *testing.T) {
	svc := NewService(adminmemory.NewSessionStore())

	_, err := svc.Login(context.Background(), "admin@sol.com", "wrong")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "someone@else.com", "987654")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "", "")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLogin_ConfiguredCredential(t *testing.T) {
	svc := NewService(
		adminmemory.NewSessionStore(),
		WithCredential(Credential{Email: "ops@example.com", Password: "s3cret"}),
	)

	_, err := svc.Login(context.Background(), "admin@sol.com", "987654")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)

	session, err := svc.Login(context.Background(), "ops@example.com", "s3cret")
	require.NoError(t, err)
	require.True(t, session.IsAdmin)
}

func TestVerify_RoundTrip(t *testing.T) {
	svc := NewService(adminmemory.NewSessionStore())

	session, err := svc.Login(context.Background(), "admin@sol.com", "987654")
	require.NoError(t, err)

	verified, err := svc.Verify(context.Background(), session.Token)
	require.NoError(t, err)
	require.Equal(t, session.Token, verified.Token)
	require.True(t, verified.IsAdmin)
}

func TestVerify_UnknownToken(t *testing.T) {
	svc := NewService(adminmemory.NewSessionStore())

	_, err := svc.Verify(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrSessionNotFound)

	_, err = svc.Verify(context.Background(), "")
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestVerify_ExpiredSessionIsDiscarded(t *testing.T) {
	current := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }

	svc := NewService(
		adminmemory.NewSessionStore(),
		WithClock(clock),
		WithTTL(time.Hour),
	)

	session, err := svc.Login(context.Background(), "admin@sol.com", "987654")
	require.NoError(t, err)

	current = current.Add(2 * time.Hour)
	_, err = svc.Verify(context.Background(), session.Token)
	require.ErrorIs(t, err, ports.ErrSessionExpired)

	// The expired session is gone, so a second check misses entirely.
	_, err = svc.Verify(context.Background(), session.Token)
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestLogout_RemovesSession(t *testing.T) {
	svc := NewService(adminmemory.NewSessionStore())

	session, err := svc.Login(context.Background(), "admin@sol.com", "987654")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.Token))

	_, err = svc.Verify(context.Background(), session.Token)
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestLogout_UnknownTokenIsFine(t *testing.T) {
	svc := NewService(adminmemory.NewSessionStore())

	require.NoError(t, svc.Logout(context.Background(), "missing"))
	require.NoError(t, svc.Logout(context.Background(), ""))
}
