package aggregate

import "strings"

// StageSlice is one segment of the stage overview chart.
type StageSlice struct {
	Stage      string
	Count      int
	ColorToken string
}

// StageColumn summarizes one of the fixed pipeline stages.
type StageColumn struct {
	Stage          string
	DisplayLabel   string
	Count          int
	TotalValue     float64
	AvgProbability float64
}

// preferredStages is the fixed column order for the stage summary.
var preferredStages = []string{"arrival", "quoted", "won"}

// StageSlices groups records by lowercased stage and counts each bucket.
// Buckets appear in order of first occurrence; a missing stage lands in
// the empty-string bucket.
func StageSlices(records []Record) []StageSlice {
	counts := make(map[string]int, len(records))
	order := make([]string, 0, len(records))
	for _, r := range records {
		stage := strings.ToLower(r.Stage)
		if _, seen := counts[stage]; !seen {
			order = append(order, stage)
		}
		counts[stage]++
	}
	slices := make([]StageSlice, 0, len(order))
	for _, stage := range order {
		slices = append(slices, StageSlice{
			Stage:      stage,
			Count:      counts[stage],
			ColorToken: StageColorToken(stage),
		})
	}
	return slices
}

// StageColumns computes the three pipeline summary columns. The output
// always contains arrival, quoted, and won in that order, with zero
// values when a stage has no matching records.
func StageColumns(records []Record) []StageColumn {
	columns := make([]StageColumn, 0, len(preferredStages))
	for _, stage := range preferredStages {
		var count int
		var total, probabilitySum float64
		for _, r := range records {
			if strings.ToLower(r.Stage) != stage {
				continue
			}
			count++
			total += r.Amount
			probabilitySum += float64(r.Probability)
		}
		column := StageColumn{
			Stage:        stage,
			DisplayLabel: strings.ToUpper(stage[:1]) + stage[1:],
			Count:        count,
			TotalValue:   total,
		}
		if count > 0 {
			column.AvgProbability = probabilitySum / float64(count)
		}
		columns = append(columns, column)
	}
	return columns
}
