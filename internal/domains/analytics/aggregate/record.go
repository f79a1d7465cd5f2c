// Package aggregate derives chart-ready view models from an in-memory
// snapshot of project records. Every function here is pure: it reads the
// snapshot it was handed and returns fresh values without touching shared
// state, so callers can invoke it concurrently without coordination.
package aggregate

import "time"

// Record is the read-only input shape for all aggregations. Stage carries
// the stored string verbatim so that unrecognized values can still be
// bucketed instead of rejected. Zero Deadline and CreatedAt values mean
// the source record had no parseable date.
type Record struct {
	Client      string
	Amount      float64
	Stage       string
	Probability int
	Deadline    time.Time
	CreatedAt   time.Time
}
