package aggregate

import (
	"sort"
	"time"
)

// monthLabelLayout renders bucket labels like "Jan 2024".
const monthLabelLayout = "Jan 2006"

// MonthPoint is one bucket of the cumulative amount series.
type MonthPoint struct {
	MonthLabel       string
	Amount           float64
	CumulativeAmount float64
}

// MonthlyCumulative buckets records by the calendar month of CreatedAt,
// sums amounts per bucket, orders buckets by the underlying date, and
// carries a running total. Records with a zero CreatedAt collapse into
// one stable bucket that sorts first.
func MonthlyCumulative(records []Record) []MonthPoint {
	amounts := make(map[time.Time]float64, len(records))
	months := make([]time.Time, 0, len(records))
	for _, r := range records {
		month := time.Date(r.CreatedAt.Year(), r.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		if _, seen := amounts[month]; !seen {
			months = append(months, month)
		}
		amounts[month] += r.Amount
	}

	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	points := make([]MonthPoint, 0, len(months))
	var cumulative float64
	for _, month := range months {
		cumulative += amounts[month]
		points = append(points, MonthPoint{
			MonthLabel:       month.Format(monthLabelLayout),
			Amount:           amounts[month],
			CumulativeAmount: cumulative,
		})
	}
	return points
}
