// Package entities provides the entity registry: CRUD over tracked
// subjects, their field assignments and the config-driven groups used
// by report filtering.
package entities

import (
	"context"
	"sort"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/dataset"
	"fieldbook/pkg/logger"
)

// Service provides business logic for the entity registry.
type Service struct {
	store dataset.Store
}

// NewService creates a new entity service.
func NewService(store dataset.Store) *Service {
	return &Service{store: store}
}

// List returns all entities in registry order.
func (s *Service) List(ctx context.Context) ([]*model.Entity, error) {
	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) ([]*model.Entity, error) {
		out := make([]*model.Entity, len(snap.Entities))
		for i, e := range snap.Entities {
			out[i] = e.Clone()
		}
		return out, nil
	})
}

// Get returns the entity with the given id.
func (s *Service) Get(ctx context.Context, entityID string) (*model.Entity, error) {
	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) (*model.Entity, error) {
		e := snap.EntityByID(entityID)
		if e == nil {
			return nil, apperror.NewNotFound("entity", entityID)
		}
		return e.Clone(), nil
	})
}

// Create adds a new entity with an empty field list.
func (s *Service) Create(ctx context.Context, name string) (*model.Entity, error) {
	e := model.NewEntity(name)
	if err := e.Validate(ctx); err != nil {
		return nil, err
	}
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		snap.Entities = append(snap.Entities, e.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "entity created", "entity_id", e.ID, "name", e.Name)
	return e, nil
}

// Rename changes the entity name.
func (s *Service) Rename(ctx context.Context, entityID, name string) (*model.Entity, error) {
	if name == "" {
		return nil, apperror.NewValidation("entity name is required").
			WithDetail("field", "name")
	}
	var out *model.Entity
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		e := snap.EntityByID(entityID)
		if e == nil {
			return apperror.NewNotFound("entity", entityID)
		}
		e.Name = name
		out = e.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the entity and cascades deletion of all its records,
// so records are never orphaned by this path. Returns whether an entity
// was actually removed.
func (s *Service) Delete(ctx context.Context, entityID string) (bool, error) {
	removed := false
	deletedRecords := 0
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		kept := snap.Entities[:0]
		for _, e := range snap.Entities {
			if e.ID == entityID {
				removed = true
				continue
			}
			kept = append(kept, e)
		}
		snap.Entities = kept
		if !removed {
			return nil
		}

		keptRecords := snap.Records[:0]
		for _, r := range snap.Records {
			if r.EntityID == entityID {
				deletedRecords++
				continue
			}
			keptRecords = append(keptRecords, r)
		}
		snap.Records = keptRecords
		return nil
	})
	if err != nil {
		return false, err
	}
	if removed {
		logger.Info(ctx, "entity deleted",
			"entity_id", entityID,
			"cascaded_records", deletedRecords,
		)
	}
	return removed, nil
}

// AssignFields replaces the entity field list verbatim. The list is not
// deduplicated and not validated against the field registry; field
// deletion later scrubs ids from it, but assignment itself accepts
// whatever the caller supplies.
func (s *Service) AssignFields(ctx context.Context, entityID string, fieldIDs []string) (*model.Entity, error) {
	if fieldIDs == nil {
		fieldIDs = []string{}
	}
	var out *model.Entity
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		e := snap.EntityByID(entityID)
		if e == nil {
			return apperror.NewNotFound("entity", entityID)
		}
		e.Fields = append([]string{}, fieldIDs...)
		out = e.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByGroup returns the entities assigned to the named config group.
// Unknown groups and ids of deleted entities yield an empty result,
// never an error.
func (s *Service) ListByGroup(ctx context.Context, group string) ([]*model.Entity, error) {
	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) ([]*model.Entity, error) {
		out := []*model.Entity{}
		for _, entityID := range snap.Config.EntityGroups[group] {
			if e := snap.EntityByID(entityID); e != nil {
				out = append(out, e.Clone())
			}
		}
		return out, nil
	})
}

// Groups returns all group names, sorted.
func (s *Service) Groups(ctx context.Context) ([]string, error) {
	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) ([]string, error) {
		out := make([]string, 0, len(snap.Config.EntityGroups))
		for name := range snap.Config.EntityGroups {
			out = append(out, name)
		}
		sort.Strings(out)
		return out, nil
	})
}
