// Package reports turns a filtered record subset into grouped
// aggregates: per-entity sums and averages, optionally pivoted on the
// distinct values of a horizontal-axis field.
package reports

// Aggregation selects the reducer applied per group.
type Aggregation string

const (
	AggSum     Aggregation = "sum"
	AggAverage Aggregation = "average"
)

// ValidAggregation reports whether agg is a known reducer.
func ValidAggregation(agg Aggregation) bool {
	return agg == AggSum || agg == AggAverage
}

// Row is one group of the report. In the per-entity shape ID and Name
// are the entity's; in the horizontal-axis shape both carry the axis
// value. Count is the number of records that contributed a value.
type Row struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// Report is the aggregation result. The group list is named Entities in
// both shapes: chart collaborators consume one row list regardless of
// whether the axis is entities or field values.
type Report struct {
	Field           string      `json:"field"`
	Aggregation     Aggregation `json:"aggregation"`
	HorizontalField string      `json:"horizontalField,omitempty"`
	Entities        []Row       `json:"entities"`
}
