// Package records provides the record store: CRUD over timestamped
// observations against entities.
package records

import (
	"context"
	"sort"
	"time"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/dataset"
	"fieldbook/internal/domain/filter"
	"fieldbook/pkg/logger"
)

// DefaultRecentLimit caps Recent when the caller passes no limit.
const DefaultRecentLimit = 10

// Service provides business logic for the record store.
type Service struct {
	store dataset.Store
}

// NewService creates a new record service.
func NewService(store dataset.Store) *Service {
	return &Service{store: store}
}

// List returns all records in capture order.
func (s *Service) List(ctx context.Context) ([]*model.Record, error) {
	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) ([]*model.Record, error) {
		out := make([]*model.Record, len(snap.Records))
		for i, r := range snap.Records {
			out[i] = r.Clone()
		}
		return out, nil
	})
}

// Get returns the record with the given id.
func (s *Service) Get(ctx context.Context, recordID string) (*model.Record, error) {
	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) (*model.Record, error) {
		r := snap.RecordByID(recordID)
		if r == nil {
			return nil, apperror.NewNotFound("record", recordID)
		}
		return r.Clone(), nil
	})
}

// Create captures a record against an entity. The timestamp defaults to
// the current instant; bulk importers rewrite it afterwards through
// UpdateDate. The entity must be live at capture time.
func (s *Service) Create(ctx context.Context, entityID string, data map[string]any) (*model.Record, error) {
	r := model.NewRecord(entityID, data)
	if err := r.Validate(ctx); err != nil {
		return nil, err
	}
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		if snap.EntityByID(entityID) == nil {
			return apperror.NewNotFound("entity", entityID)
		}
		snap.Records = append(snap.Records, r.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "record created", "record_id", r.ID, "entity_id", entityID)
	return r, nil
}

// UpdateDate replaces the record timestamp.
func (s *Service) UpdateDate(ctx context.Context, recordID string, ts time.Time) (*model.Record, error) {
	var out *model.Record
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		r := snap.RecordByID(recordID)
		if r == nil {
			return apperror.NewNotFound("record", recordID)
		}
		r.Timestamp = ts.UTC()
		out = r.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update merges partial data into the record value map; keys absent
// from partial keep their stored values. The timestamp is replaced only
// when ts is non-nil.
func (s *Service) Update(ctx context.Context, recordID string, partial map[string]any, ts *time.Time) (bool, error) {
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		r := snap.RecordByID(recordID)
		if r == nil {
			return apperror.NewNotFound("record", recordID)
		}
		for k, v := range partial {
			r.Data[k] = v
		}
		if ts != nil {
			r.Timestamp = ts.UTC()
		}
		return nil
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the record. Returns whether one was actually removed.
func (s *Service) Delete(ctx context.Context, recordID string) (bool, error) {
	removed := false
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		kept := snap.Records[:0]
		for _, r := range snap.Records {
			if r.ID == recordID {
				removed = true
				continue
			}
			kept = append(kept, r)
		}
		snap.Records = kept
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// Recent returns up to limit records sorted descending by timestamp.
// Order between equal timestamps is unspecified; the sort is stable so
// ties keep capture order in practice.
func (s *Service) Recent(ctx context.Context, limit int) ([]*model.Record, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) ([]*model.Record, error) {
		out := make([]*model.Record, len(snap.Records))
		for i, r := range snap.Records {
			out[i] = r.Clone()
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Timestamp.After(out[j].Timestamp)
		})
		if len(out) > limit {
			out = out[:limit]
		}
		return out, nil
	})
}

// Filter returns the records matching the given criteria, in capture
// order. A single EntityID is folded into the id set so both forms
// behave the same.
func (s *Service) Filter(ctx context.Context, criteria filter.Criteria) ([]*model.Record, error) {
	if criteria.EntityID != "" {
		criteria.EntityIDs = append(criteria.EntityIDs, criteria.EntityID)
		criteria.EntityID = ""
	}
	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) ([]*model.Record, error) {
		matched, err := filter.ApplyMultiple(snap.Records, criteria)
		if err != nil {
			return nil, err
		}
		out := make([]*model.Record, len(matched))
		for i, r := range matched {
			out[i] = r.Clone()
		}
		return out, nil
	})
}
