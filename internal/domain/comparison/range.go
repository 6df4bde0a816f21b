// Package comparison computes period-over-period deltas: the preceding
// window of equal duration, per-field aggregates for both windows and
// the resulting difference and percent variation.
package comparison

import (
	"time"
)

// Range is a date window. From and To are start-of-day instants; the
// filter layer expands To to end of day when selecting records.
type Range struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// PreviousRange returns the prior window of the same duration ending
// the day immediately before from. A 7-day range [D, D+6] maps to
// [D-7, D-1]; a zero-length range maps to the single preceding day.
func PreviousRange(from, to time.Time) Range {
	duration := to.Sub(from)
	prevTo := from.Add(-24 * time.Hour)
	prevFrom := prevTo.Add(-duration)
	return Range{From: prevFrom, To: prevTo}
}

// ParseRange parses a YYYY-MM-DD pair into a Range.
func ParseRange(fromDate, toDate string) (Range, error) {
	from, err := time.ParseInLocation("2006-01-02", fromDate, time.UTC)
	if err != nil {
		return Range{}, err
	}
	to, err := time.ParseInLocation("2006-01-02", toDate, time.UTC)
	if err != nil {
		return Range{}, err
	}
	return Range{From: from, To: to}, nil
}

// FromDate renders the lower bound for the filter layer.
func (r Range) FromDate() string {
	return r.From.Format("2006-01-02")
}

// ToDate renders the upper bound for the filter layer.
func (r Range) ToDate() string {
	return r.To.Format("2006-01-02")
}
