package comparison

import (
	"github.com/shopspring/decimal"

	"fieldbook/internal/core/numeric"
	"fieldbook/internal/core/model"
)

// Reducer selects the aggregate applied to a field over a window.
type Reducer string

const (
	Sum Reducer = "sum"
	Avg Reducer = "avg"
	Max Reducer = "max"
	Min Reducer = "min"
)

// ValidReducer reports whether agg is a known reducer.
func ValidReducer(agg Reducer) bool {
	switch agg {
	case Sum, Avg, Max, Min:
		return true
	}
	return false
}

// AggregateField reduces a field over a record window. Every record
// contributes its coerced value (missing or non-numeric counts as 0);
// avg, max and min over zero records return 0 by explicit guard, never
// NaN.
func AggregateField(records []*model.Record, fieldID string, agg Reducer) float64 {
	if len(records) == 0 {
		return 0
	}

	var sum decimal.Decimal
	var best decimal.Decimal
	for i, r := range records {
		v := numeric.Coerce(r.Value(fieldID))
		sum = sum.Add(v)
		if i == 0 {
			best = v
			continue
		}
		switch agg {
		case Max:
			if v.GreaterThan(best) {
				best = v
			}
		case Min:
			if v.LessThan(best) {
				best = v
			}
		}
	}

	var out decimal.Decimal
	switch agg {
	case Avg:
		out = sum.Div(decimal.NewFromInt(int64(len(records))))
	case Max, Min:
		out = best
	default:
		out = sum
	}
	f, _ := out.Float64()
	return f
}

// Delta is a current-vs-previous comparison.
type Delta struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Diff     float64 `json:"diff"`
	Percent  float64 `json:"percent"`
}

// Compare derives the delta and percent variation. Division by a zero
// previous value is defined to yield 0%, not infinity.
func Compare(current, previous float64) Delta {
	d := Delta{
		Current:  current,
		Previous: previous,
		Diff:     current - previous,
	}
	if previous != 0 {
		d.Percent = d.Diff / previous * 100
	}
	return d
}
