package aggregate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStageSlices_CountsEveryRecord(t *testing.T) {
	records := []Record{
		{Stage: "Arrival"},
		{Stage: "quoted"},
		{Stage: "arrival"},
		{Stage: ""},
		{Stage: "negotiating"},
	}

	slices := StageSlices(records)

	total := 0
	for _, s := range slices {
		total += s.Count
	}
	require.Equal(t, len(records), total)

	require.Equal(t, "arrival", slices[0].Stage)
	require.Equal(t, 2, slices[0].Count)
	require.Equal(t, "stage-arrival", slices[0].ColorToken)
}

func TestStageSlices_UnknownBucketsGetMutedToken(t *testing.T) {
	slices := StageSlices([]Record{{Stage: "negotiating"}, {Stage: ""}})

	require.Len(t, slices, 2)
	require.Equal(t, MutedToken, slices[0].ColorToken)
	require.Equal(t, MutedToken, slices[1].ColorToken)
}

func TestStageSlices_FirstSeenOrder(t *testing.T) {
	slices := StageSlices([]Record{{Stage: "won"}, {Stage: "arrival"}, {Stage: "won"}})

	require.Len(t, slices, 2)
	require.Equal(t, "won", slices[0].Stage)
	require.Equal(t, "arrival", slices[1].Stage)
}

func TestStageColumns_AlwaysThreeInFixedOrder(t *testing.T) {
	columns := StageColumns(nil)

	require.Len(t, columns, 3)
	require.Equal(t, "arrival", columns[0].Stage)
	require.Equal(t, "quoted", columns[1].Stage)
	require.Equal(t, "won", columns[2].Stage)
	for _, c := range columns {
		require.Zero(t, c.Count)
		require.Zero(t, c.TotalValue)
		require.Zero(t, c.AvgProbability)
	}
}

func TestStageColumns_Aggregates(t *testing.T) {
	records := []Record{
		{Stage: "quoted", Amount: 100, Probability: 40},
		{Stage: "Quoted", Amount: 300, Probability: 60},
		{Stage: "won", Amount: 500, Probability: 100},
		{Stage: "lost", Amount: 50, Probability: 0},
	}

	columns := StageColumns(records)

	require.Len(t, columns, 3)
	require.Equal(t, "Quoted", columns[1].DisplayLabel)
	require.Equal(t, 2, columns[1].Count)
	require.Equal(t, 400.0, columns[1].TotalValue)
	require.Equal(t, 50.0, columns[1].AvgProbability)
	require.Equal(t, 1, columns[2].Count)
	require.Equal(t, 500.0, columns[2].TotalValue)
	require.Zero(t, columns[0].Count)
}
