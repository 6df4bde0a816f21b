// Package fields provides the field registry: CRUD over typed attribute
// definitions and the shared-numeric lookup used by comparison reports.
package fields

import (
	"context"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/dataset"
	"fieldbook/pkg/logger"
)

// Spec carries the mutable attributes of a field definition.
type Spec struct {
	Name     string
	Type     model.FieldType
	Required bool
	Options  []string

	UseForRecordsTable      bool
	IsColumn3               bool
	IsColumn4               bool
	IsColumn5               bool
	UseForComparativeReport bool
	IsHorizontalAxis        bool
	IsCompareField          bool
}

func (spec Spec) apply(f *model.Field) {
	f.Name = spec.Name
	f.Type = spec.Type
	f.Required = spec.Required
	f.Options = append([]string{}, spec.Options...)
	f.UseForRecordsTable = spec.UseForRecordsTable
	f.IsColumn3 = spec.IsColumn3
	f.IsColumn4 = spec.IsColumn4
	f.IsColumn5 = spec.IsColumn5
	f.UseForComparativeReport = spec.UseForComparativeReport
	f.IsHorizontalAxis = spec.IsHorizontalAxis
	f.IsCompareField = spec.IsCompareField
}

// Service provides business logic for the field registry.
type Service struct {
	store dataset.Store
}

// NewService creates a new field service.
func NewService(store dataset.Store) *Service {
	return &Service{store: store}
}

// List returns all field definitions in registry order.
func (s *Service) List(ctx context.Context) ([]*model.Field, error) {
	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) ([]*model.Field, error) {
		out := make([]*model.Field, len(snap.Fields))
		for i, f := range snap.Fields {
			out[i] = f.Clone()
		}
		return out, nil
	})
}

// Get returns the field with the given id.
func (s *Service) Get(ctx context.Context, fieldID string) (*model.Field, error) {
	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) (*model.Field, error) {
		f := snap.FieldByID(fieldID)
		if f == nil {
			return nil, apperror.NewNotFound("field", fieldID)
		}
		return f.Clone(), nil
	})
}

// GetMany resolves a list of field ids, silently dropping unknown ones
// and preserving input order.
func (s *Service) GetMany(ctx context.Context, fieldIDs []string) ([]*model.Field, error) {
	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) ([]*model.Field, error) {
		out := []*model.Field{}
		for _, fieldID := range fieldIDs {
			if f := snap.FieldByID(fieldID); f != nil {
				out = append(out, f.Clone())
			}
		}
		return out, nil
	})
}

// Create adds a new field definition.
func (s *Service) Create(ctx context.Context, spec Spec) (*model.Field, error) {
	f := model.NewField(spec.Name, spec.Type)
	spec.apply(f)
	if err := f.Validate(ctx); err != nil {
		return nil, err
	}
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		snap.Fields = append(snap.Fields, f.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "field created", "field_id", f.ID, "type", string(f.Type))
	return f, nil
}

// Update replaces the mutable attributes of a field definition.
// Type changes are accepted but there is no value migration: existing
// record values keep whatever shape they were captured with.
func (s *Service) Update(ctx context.Context, fieldID string, spec Spec) (*model.Field, error) {
	var out *model.Field
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		f := snap.FieldByID(fieldID)
		if f == nil {
			return apperror.NewNotFound("field", fieldID)
		}
		spec.apply(f)
		if err := f.Validate(ctx); err != nil {
			return err
		}
		out = f.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the field definition and scrubs its id from every
// entity's assignment list. Record data is left untouched: values keyed
// by the deleted field stay in place as orphans, and report math over
// them must fail with field-not-found rather than recompute silently.
func (s *Service) Delete(ctx context.Context, fieldID string) (bool, error) {
	removed := false
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		kept := snap.Fields[:0]
		for _, f := range snap.Fields {
			if f.ID == fieldID {
				removed = true
				continue
			}
			kept = append(kept, f)
		}
		snap.Fields = kept
		if !removed {
			return nil
		}

		for _, e := range snap.Entities {
			assigned := e.Fields[:0]
			for _, id := range e.Fields {
				if id == fieldID {
					continue
				}
				assigned = append(assigned, id)
			}
			e.Fields = assigned
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if removed {
		logger.Info(ctx, "field deleted", "field_id", fieldID)
	}
	return removed, nil
}

// SharedNumeric returns the numeric fields referenced by more than one
// entity, by occurrence count across all assignment lists. Cross-entity
// comparison reports are restricted to these fields.
func (s *Service) SharedNumeric(ctx context.Context) ([]*model.Field, error) {
	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) ([]*model.Field, error) {
		counts := map[string]int{}
		for _, e := range snap.Entities {
			for _, fieldID := range e.Fields {
				counts[fieldID]++
			}
		}
		out := []*model.Field{}
		for _, f := range snap.Fields {
			if f.IsNumeric() && counts[f.ID] > 1 {
				out = append(out, f.Clone())
			}
		}
		return out, nil
	})
}
