package aggregate

import "strings"

// completedStageMarker is matched with exact case. Historical data used the
// capitalized form and earlier reports counted only that spelling, so the
// strict comparison is kept to reproduce those counts.
const completedStageMarker = "Completed"

// SummaryStats are the top-level scalar metrics for the dashboard cards.
type SummaryStats struct {
	TotalPipelineValue float64
	TotalWonValue      float64
	AvgProbability     float64
	CompletedCount     int
}

// Summarize computes the headline metrics for a record snapshot. An empty
// snapshot yields all zeros.
func Summarize(records []Record) SummaryStats {
	var stats SummaryStats
	var probabilitySum float64
	for _, r := range records {
		stats.TotalPipelineValue += r.Amount
		if strings.EqualFold(r.Stage, "won") {
			stats.TotalWonValue += r.Amount
		}
		if r.Stage == completedStageMarker {
			stats.CompletedCount++
		}
		probabilitySum += float64(r.Probability)
	}
	if len(records) > 0 {
		stats.AvgProbability = probabilitySum / float64(len(records))
	}
	return stats
}
