package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewProject_Valid(t *testing.T) {
	deadline := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	p, err := NewProject("p1", "Metro Expansion", "Acme Co", 125000, deadline, "Quoted")

	require.NoError(t, err)
	require.Equal(t, "p1", p.ID)
	require.Equal(t, StageQuoted, p.Stage)
	require.Equal(t, 125000.0, p.Amount)
	require.Equal(t, deadline, p.Deadline)
}

func TestNewProject_Invalid(t *testing.T) {
	deadline := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewProject("p1", "", "Acme Co", 100, deadline, "won")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewProject("p1", "Metro", "  ", 100, deadline, "won")
	require.ErrorIs(t, err, ErrEmptyClient)

	_, err = NewProject("p1", "Metro", "Acme Co", -1, deadline, "won")
	require.ErrorIs(t, err, ErrNegativeAmount)

	_, err = NewProject("p1", "Metro", "Acme Co", 100, time.Time{}, "won")
	require.ErrorIs(t, err, ErrMissingDeadline)

	_, err = NewProject("p1", "Metro", "Acme Co", 100, deadline, "negotiating")
	require.ErrorIs(t, err, ErrInvalidStage)
}

func TestNormalizeStage(t *testing.T) {
	cases := map[string]Stage{
		"arrival": StageArrival,
		"Arrival": StageArrival,
		"ARR":     StageArrival,
		"quoted":  StageQuoted,
		"Quote":   StageQuoted,
		"won":     StageWon,
		" WON ":   StageWon,
	}
	for raw, want := range cases {
		got, ok := NormalizeStage(raw)
		require.True(t, ok, "expected %q to normalize", raw)
		require.Equal(t, want, got)
	}

	for _, raw := range []string{"", "lost", "completed", "wo"} {
		_, ok := NormalizeStage(raw)
		require.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestProject_BoundedFields(t *testing.T) {
	p := &Project{}

	require.ErrorIs(t, p.UpdateProbability(-1), ErrInvalidProbability)
	require.ErrorIs(t, p.UpdateProbability(101), ErrInvalidProbability)
	require.NoError(t, p.UpdateProbability(100))

	require.ErrorIs(t, p.UpdateProgress(-5), ErrInvalidProgress)
	require.ErrorIs(t, p.UpdateProgress(120), ErrInvalidProgress)
	require.NoError(t, p.UpdateProgress(0))
}

func TestProject_Clone(t *testing.T) {
	received := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	original := &Project{ID: "p1", Name: "Metro", ReceivedDate: &received}

	clone := original.Clone()
	clone.Name = "Changed"
	*clone.ReceivedDate = clone.ReceivedDate.AddDate(1, 0, 0)

	require.Equal(t, "Metro", original.Name)
	require.Equal(t, received, *original.ReceivedDate)
}
