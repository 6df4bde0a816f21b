package reports

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/model"
	"fieldbook/internal/core/numeric"
	"fieldbook/internal/domain/dataset"
	"fieldbook/internal/domain/filter"
)

// Service provides report generation over the dataset.
type Service struct {
	store dataset.Store
}

// NewService creates a new reports service.
func NewService(store dataset.Store) *Service {
	return &Service{store: store}
}

// Generate aggregates a numeric field across the filtered record set.
//
// Preconditions, checked in order: the target field must exist (a
// report re-run after field deletion fails here instead of recomputing
// on stale record data), must be numeric, and after restricting to
// entities that carry the field plus any entity criteria at least one
// entity must remain. A horizontal field, when given, must resolve.
//
// Every qualifying entity appears in the result, with {0, 0} when no
// record matched, so charts keep a stable, complete axis.
func (s *Service) Generate(
	ctx context.Context,
	fieldID string,
	agg Aggregation,
	criteria filter.Criteria,
	horizontalFieldID string,
) (*Report, error) {
	if !ValidAggregation(agg) {
		return nil, apperror.NewValidation("unknown aggregation").
			WithDetail("aggregation", string(agg))
	}

	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) (*Report, error) {
		field := snap.FieldByID(fieldID)
		if field == nil {
			return nil, apperror.NewNotFound("field", fieldID)
		}
		if !field.IsNumeric() {
			return nil, apperror.NewFieldType(fieldID, string(field.Type))
		}

		var axis *model.Field
		if horizontalFieldID != "" {
			axis = snap.FieldByID(horizontalFieldID)
			if axis == nil {
				return nil, apperror.NewInvalidAxisField(horizontalFieldID)
			}
		}

		qualifying := qualifyingEntities(snap, fieldID, criteria)
		if len(qualifying) == 0 {
			return nil, apperror.NewNoMatchingEntities(fieldID)
		}

		// Entity membership is handled by the qualifying set; only the
		// date and expression criteria go through the filter pass.
		dateOnly := criteria
		dateOnly.EntityID = ""
		dateOnly.EntityIDs = nil
		filtered, err := filter.Apply(snap.Records, dateOnly)
		if err != nil {
			return nil, err
		}

		report := &Report{
			Field:       field.Name,
			Aggregation: agg,
		}
		if axis != nil {
			report.HorizontalField = axis.Name
			report.Entities = groupByAxis(filtered, qualifying, fieldID, axis.ID, agg)
		} else {
			report.Entities = groupByEntity(filtered, qualifying, fieldID, agg)
		}
		return report, nil
	})
}

// qualifyingEntities returns the entities whose field list contains
// fieldID, restricted to the criteria's entity set when one is given.
func qualifyingEntities(snap *model.Snapshot, fieldID string, criteria filter.Criteria) []*model.Entity {
	var idSet map[string]struct{}
	if criteria.EntityID != "" || len(criteria.EntityIDs) > 0 {
		idSet = map[string]struct{}{}
		if criteria.EntityID != "" {
			idSet[criteria.EntityID] = struct{}{}
		}
		for _, entityID := range criteria.EntityIDs {
			idSet[entityID] = struct{}{}
		}
	}

	out := []*model.Entity{}
	for _, e := range snap.Entities {
		if !e.HasField(fieldID) {
			continue
		}
		if idSet != nil {
			if _, ok := idSet[e.ID]; !ok {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

type accumulator struct {
	sum   decimal.Decimal
	count int
}

func (a *accumulator) add(raw any) {
	a.sum = a.sum.Add(numeric.Coerce(raw))
	a.count++
}

func (a *accumulator) result(agg Aggregation) float64 {
	if a.count == 0 {
		return 0
	}
	value := a.sum
	if agg == AggAverage {
		value = a.sum.Div(decimal.NewFromInt(int64(a.count)))
	}
	f, _ := value.Float64()
	return f
}

// groupByEntity reduces the target field per qualifying entity. Only
// records that define the field key contribute; defined-but-garbage
// values coerce to 0 and still count.
func groupByEntity(records []*model.Record, qualifying []*model.Entity, fieldID string, agg Aggregation) []Row {
	rows := make([]Row, 0, len(qualifying))
	for _, e := range qualifying {
		acc := accumulator{}
		for _, r := range records {
			if r.EntityID != e.ID || !r.Has(fieldID) {
				continue
			}
			acc.add(r.Value(fieldID))
		}
		rows = append(rows, Row{
			ID:    e.ID,
			Name:  e.Name,
			Value: acc.result(agg),
			Count: acc.count,
		})
	}
	return rows
}

// groupByAxis reduces the target field per distinct value of the axis
// field, mixing records across the qualifying entities. Groups are
// emitted in first-seen order of the filtered record sequence; the
// ordering is a contract for chart output, so the collection is an
// order-preserving key list, never a bare map.
func groupByAxis(records []*model.Record, qualifying []*model.Entity, fieldID, axisID string, agg Aggregation) []Row {
	qualifyingIDs := make(map[string]struct{}, len(qualifying))
	for _, e := range qualifying {
		qualifyingIDs[e.ID] = struct{}{}
	}

	var order []string
	groups := map[string]*accumulator{}
	for _, r := range records {
		if _, ok := qualifyingIDs[r.EntityID]; !ok {
			continue
		}
		if !r.Has(axisID) {
			continue
		}
		key := axisLabel(r.Value(axisID))
		acc, seen := groups[key]
		if !seen {
			acc = &accumulator{}
			groups[key] = acc
			order = append(order, key)
		}
		if r.Has(fieldID) {
			acc.add(r.Value(fieldID))
		}
	}

	rows := make([]Row, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		rows = append(rows, Row{
			ID:    key,
			Name:  key,
			Value: acc.result(agg),
			Count: acc.count,
		})
	}
	return rows
}

// axisLabel renders an axis value as a stable group key. Numbers go
// through decimal so 5 and 5.0 land in the same group.
func axisLabel(raw any) string {
	switch val := raw.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		if n := numeric.Parse(raw); n.IsNumber() {
			return n.Decimal().String()
		}
		return fmt.Sprint(raw)
	}
}
