package aggregate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	records := []Record{
		{Stage: "won", Amount: 500, Probability: 100},
		{Stage: "WON", Amount: 100, Probability: 90},
		{Stage: "quoted", Amount: 200, Probability: 50},
		{Stage: "Completed", Amount: 300, Probability: 100},
	}

	stats := Summarize(records)

	require.Equal(t, 1100.0, stats.TotalPipelineValue)
	require.Equal(t, 600.0, stats.TotalWonValue)
	require.Equal(t, 85.0, stats.AvgProbability)
	require.Equal(t, 1, stats.CompletedCount)
}

func TestSummarize_CompletedCountIsCaseSensitive(t *testing.T) {
	records := []Record{
		{Stage: "completed"},
		{Stage: "COMPLETED"},
		{Stage: "Completed"},
	}

	stats := Summarize(records)

	require.Equal(t, 1, stats.CompletedCount)
}

func TestSummarize_EmptyInput(t *testing.T) {
	stats := Summarize(nil)

	require.Zero(t, stats.TotalPipelineValue)
	require.Zero(t, stats.TotalWonValue)
	require.Zero(t, stats.AvgProbability)
	require.Zero(t, stats.CompletedCount)
}
