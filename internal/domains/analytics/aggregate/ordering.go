package aggregate

import (
	"sort"
	"strings"
)

// DisplayLess is the record table ordering: open records before won
// records, then ascending by deadline within each partition. A zero
// deadline sorts last in its partition. Callers must use a stable sort
// so equal keys keep their input order.
func DisplayLess(a, b Record) bool {
	wonA := strings.EqualFold(a.Stage, "won")
	wonB := strings.EqualFold(b.Stage, "won")
	if wonA != wonB {
		return !wonA
	}
	zeroA := a.Deadline.IsZero()
	zeroB := b.Deadline.IsZero()
	if zeroA != zeroB {
		return !zeroA
	}
	if zeroA {
		return false
	}
	return a.Deadline.Before(b.Deadline)
}

// SortForDisplay returns a copy of the snapshot ordered by DisplayLess.
// The input slice is not modified.
func SortForDisplay(records []Record) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return DisplayLess(sorted[i], sorted[j])
	})
	return sorted
}
