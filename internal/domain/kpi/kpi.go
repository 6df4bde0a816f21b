// Package kpi derives simple descriptive metrics over a filtered record
// set: counts, per-day averages, distinct-entity cardinality and
// period-bucketed sums.
package kpi

import (
	"time"

	"fieldbook/internal/core/numeric"
	"fieldbook/internal/core/model"
)

// Metrics are the basic descriptive statistics of a record set.
type Metrics struct {
	Count          int     `json:"count"`
	DailyAvg       float64 `json:"dailyAvg"`
	UniqueEntities int     `json:"uniqueEntities"`
}

// BasicMetrics computes record count, per-day average and the number of
// distinct entities present. DailyAvg divides by the number of distinct
// calendar dates; zero days yields 0, never a division by zero.
func BasicMetrics(records []*model.Record) Metrics {
	days := map[string]struct{}{}
	entities := map[string]struct{}{}
	for _, r := range records {
		days[r.Timestamp.UTC().Format("2006-01-02")] = struct{}{}
		entities[r.EntityID] = struct{}{}
	}

	m := Metrics{
		Count:          len(records),
		UniqueEntities: len(entities),
	}
	if len(days) > 0 {
		m.DailyAvg = float64(m.Count) / float64(len(days))
	}
	return m
}

// Period is the bucketing granularity for GroupByPeriod.
type Period string

const (
	ByDay   Period = "day"
	ByMonth Period = "month"
	ByYear  Period = "year"
)

// ValidPeriod reports whether p is a known granularity.
func ValidPeriod(p Period) bool {
	switch p {
	case ByDay, ByMonth, ByYear:
		return true
	}
	return false
}

// Bucket accumulates one period's worth of a field.
type Bucket struct {
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
}

// GroupByPeriod buckets records by calendar period (UTC) and sums the
// coerced value of the given field per bucket. Keys are YYYY-MM-DD,
// YYYY-MM or YYYY depending on the granularity.
func GroupByPeriod(records []*model.Record, fieldID string, period Period) map[string]Bucket {
	out := map[string]Bucket{}
	for _, r := range records {
		key := periodKey(r.Timestamp, period)
		b := out[key]
		b.Sum += numeric.CoerceFloat(r.Value(fieldID))
		b.Count++
		out[key] = b
	}
	return out
}

func periodKey(ts time.Time, period Period) string {
	ts = ts.UTC()
	switch period {
	case ByMonth:
		return ts.Format("2006-01")
	case ByYear:
		return ts.Format("2006")
	default:
		return ts.Format("2006-01-02")
	}
}
