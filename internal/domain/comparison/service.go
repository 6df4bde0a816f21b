package comparison

import (
	"context"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/dataset"
	"fieldbook/internal/domain/filter"
)

// FieldDelta is the comparison result for one field. Numeric fields
// compare the requested aggregate; categorical fields compare the count
// of records defining a value.
type FieldDelta struct {
	FieldID   string `json:"fieldId"`
	FieldName string `json:"fieldName"`
	Delta
}

// Result is a full period comparison.
type Result struct {
	Current  Range        `json:"current"`
	Previous Range        `json:"previous"`
	Reducer  Reducer      `json:"aggregation"`
	Fields   []FieldDelta `json:"fields"`
}

// Service runs period comparisons over the dataset.
type Service struct {
	store dataset.Store
}

// NewService creates a new comparison service.
func NewService(store dataset.Store) *Service {
	return &Service{store: store}
}

// Run compares the given window against the immediately preceding one
// of equal duration, for each requested field. Unknown field ids are
// dropped silently, matching the registry's GetMany contract. Entity
// and expression criteria apply to both windows; the date bounds of the
// criteria are replaced by the window under comparison.
func (s *Service) Run(
	ctx context.Context,
	fieldIDs []string,
	agg Reducer,
	fromDate, toDate string,
	criteria filter.Criteria,
) (*Result, error) {
	if agg == "" {
		agg = Sum
	}
	if !ValidReducer(agg) {
		return nil, apperror.NewValidation("unknown aggregation").
			WithDetail("aggregation", string(agg))
	}
	current, err := ParseRange(fromDate, toDate)
	if err != nil {
		return nil, apperror.NewValidation("invalid date range").
			WithDetail("fromDate", fromDate).
			WithDetail("toDate", toDate)
	}
	previous := PreviousRange(current.From, current.To)

	// windowRecords goes through ApplyMultiple, so fold a single-entity
	// criteria into the id set.
	if criteria.EntityID != "" {
		criteria.EntityIDs = append(criteria.EntityIDs, criteria.EntityID)
		criteria.EntityID = ""
	}

	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) (*Result, error) {
		currentRecords, err := windowRecords(snap, criteria, current)
		if err != nil {
			return nil, err
		}
		previousRecords, err := windowRecords(snap, criteria, previous)
		if err != nil {
			return nil, err
		}

		result := &Result{
			Current:  current,
			Previous: previous,
			Reducer:  agg,
			Fields:   []FieldDelta{},
		}
		for _, fieldID := range fieldIDs {
			f := snap.FieldByID(fieldID)
			if f == nil {
				continue
			}
			var cur, prev float64
			if f.IsNumeric() {
				cur = AggregateField(currentRecords, fieldID, agg)
				prev = AggregateField(previousRecords, fieldID, agg)
			} else {
				cur = float64(countDefined(currentRecords, fieldID))
				prev = float64(countDefined(previousRecords, fieldID))
			}
			result.Fields = append(result.Fields, FieldDelta{
				FieldID:   f.ID,
				FieldName: f.Name,
				Delta:     Compare(cur, prev),
			})
		}
		return result, nil
	})
}

func windowRecords(snap *model.Snapshot, criteria filter.Criteria, window Range) ([]*model.Record, error) {
	c := criteria
	c.FromDate = window.FromDate()
	c.ToDate = window.ToDate()
	return filter.ApplyMultiple(snap.Records, c)
}

func countDefined(records []*model.Record, fieldID string) int {
	n := 0
	for _, r := range records {
		if r.Has(fieldID) {
			n++
		}
	}
	return n
}
