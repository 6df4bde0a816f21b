// Package settings provides read-modify-write access to the
// process-wide config: naming overrides, KPI-view preferences and
// entity groups.
package settings

import (
	"context"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/dataset"
)

// Service provides config access.
type Service struct {
	store dataset.Store
}

// NewService creates a new settings service.
func NewService(store dataset.Store) *Service {
	return &Service{store: store}
}

// Get returns the current config.
func (s *Service) Get(ctx context.Context) (model.Config, error) {
	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) (model.Config, error) {
		return snap.Config.Clone(), nil
	})
}

// Update applies mutate to the current config and persists the result.
// The config is never deleted, only overwritten.
func (s *Service) Update(ctx context.Context, mutate func(*model.Config)) (model.Config, error) {
	var out model.Config
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		mutate(&snap.Config)
		if snap.Config.KPIFields == nil {
			snap.Config.KPIFields = []string{}
		}
		out = snap.Config.Clone()
		return nil
	})
	if err != nil {
		return model.Config{}, err
	}
	return out, nil
}

// SetEntityGroup replaces the member list of one group; an empty member
// list removes the group.
func (s *Service) SetEntityGroup(ctx context.Context, group string, entityIDs []string) (model.Config, error) {
	if group == "" {
		return model.Config{}, apperror.NewValidation("group name is required").
			WithDetail("field", "group")
	}
	return s.Update(ctx, func(cfg *model.Config) {
		if len(entityIDs) == 0 {
			delete(cfg.EntityGroups, group)
			return
		}
		if cfg.EntityGroups == nil {
			cfg.EntityGroups = map[string][]string{}
		}
		cfg.EntityGroups[group] = append([]string{}, entityIDs...)
	})
}
