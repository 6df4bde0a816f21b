// Package filter reduces the record set by entity membership, inclusive
// date range and an optional expression predicate. All criteria are
// conjunctive; absent criteria are no-ops, so empty criteria are the
// identity. The engine never mutates its input and always returns a
// fresh slice.
package filter

import (
	"strings"
	"time"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/model"
)

// Criteria describes one filter pass. All fields are optional.
type Criteria struct {
	// EntityID keeps records of a single entity.
	EntityID string `json:"entityId,omitempty"`

	// EntityIDs keeps records of any of the given entities. An empty
	// set applies no entity filter at all.
	EntityIDs []string `json:"entityIds,omitempty"`

	// FromDate is an inclusive YYYY-MM-DD lower bound, start of day.
	FromDate string `json:"fromDate,omitempty"`

	// ToDate is an inclusive YYYY-MM-DD upper bound. The time component
	// is forced to 23:59:59 of the named day regardless of any time
	// portion in the input.
	ToDate string `json:"toDate,omitempty"`

	// Expression is an optional CEL predicate over entityId, timestamp
	// and data, AND-ed with the other criteria.
	Expression string `json:"expression,omitempty"`
}

// IsZero reports whether the criteria filter nothing.
func (c Criteria) IsZero() bool {
	return c.EntityID == "" && len(c.EntityIDs) == 0 &&
		c.FromDate == "" && c.ToDate == "" && c.Expression == ""
}

// Apply filters records by a single-entity criteria pass.
func Apply(records []*model.Record, c Criteria) ([]*model.Record, error) {
	var ids []string
	if c.EntityID != "" {
		ids = []string{c.EntityID}
	}
	return apply(records, ids, c)
}

// ApplyMultiple filters records by an entity-set criteria pass. The
// semantics match Apply with EntityIDs instead of a single EntityID.
func ApplyMultiple(records []*model.Record, c Criteria) ([]*model.Record, error) {
	return apply(records, c.EntityIDs, c)
}

func apply(records []*model.Record, entityIDs []string, c Criteria) ([]*model.Record, error) {
	var from, to time.Time
	var err error
	if c.FromDate != "" {
		from, err = startOfDay(c.FromDate)
		if err != nil {
			return nil, apperror.NewValidation("invalid fromDate").
				WithDetail("value", c.FromDate)
		}
	}
	if c.ToDate != "" {
		to, err = endOfDay(c.ToDate)
		if err != nil {
			return nil, apperror.NewValidation("invalid toDate").
				WithDetail("value", c.ToDate)
		}
	}

	var prog *Program
	if c.Expression != "" {
		prog, err = Compile(c.Expression)
		if err != nil {
			return nil, err
		}
	}

	var idSet map[string]struct{}
	if len(entityIDs) > 0 {
		idSet = make(map[string]struct{}, len(entityIDs))
		for _, entityID := range entityIDs {
			idSet[entityID] = struct{}{}
		}
	}

	out := []*model.Record{}
	for _, r := range records {
		if idSet != nil {
			if _, ok := idSet[r.EntityID]; !ok {
				continue
			}
		}
		if c.FromDate != "" && r.Timestamp.Before(from) {
			continue
		}
		if c.ToDate != "" && r.Timestamp.After(to) {
			continue
		}
		if prog != nil && !prog.Match(r) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// datePart trims any time portion from a date string.
func datePart(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func startOfDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", datePart(s), time.UTC)
}

func endOfDay(s string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", datePart(s), time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(23*time.Hour + 59*time.Minute + 59*time.Second), nil
}
