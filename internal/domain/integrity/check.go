// Package integrity surfaces the dataset's known consistency gaps as
// warnings: records pointing at deleted entities, entity field
// assignments pointing at deleted fields, and orphaned value keys in
// record data. The check is strictly read-only. Report math depends on
// the exact drop/coerce behavior around these gaps, so nothing here
// repairs anything.
package integrity

import (
	"context"
	"fmt"
	"sort"

	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/dataset"
)

// WarningKind classifies a consistency gap.
type WarningKind string

const (
	// DanglingEntityRef marks a record whose entity no longer exists.
	// Such records are silently excluded from entity-scoped views.
	DanglingEntityRef WarningKind = "dangling_entity_ref"

	// DanglingFieldAssignment marks an entity field list entry whose
	// field definition no longer exists.
	DanglingFieldAssignment WarningKind = "dangling_field_assignment"

	// OrphanedValueKey marks a record data key with no field
	// definition. Field deletion never scrubs record data.
	OrphanedValueKey WarningKind = "orphaned_value_key"

	// DanglingGroupMember marks an entity-group entry whose entity no
	// longer exists.
	DanglingGroupMember WarningKind = "dangling_group_member"
)

// Warning describes one consistency gap.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Subject string      `json:"subject"` // id of the record/entity/group carrying the gap
	Ref     string      `json:"ref"`     // the dangling id
	Message string      `json:"message"`
}

// Service runs consistency checks over the dataset.
type Service struct {
	store dataset.Store
}

// NewService creates a new integrity service.
func NewService(store dataset.Store) *Service {
	return &Service{store: store}
}

// Check scans the current snapshot and returns all warnings.
func (s *Service) Check(ctx context.Context) ([]Warning, error) {
	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) ([]Warning, error) {
		return Scan(snap), nil
	})
}

// Scan inspects a snapshot directly. Exported for import previews,
// which run the check before a document is accepted into the store.
func Scan(snap *model.Snapshot) []Warning {
	entityIDs := make(map[string]struct{}, len(snap.Entities))
	for _, e := range snap.Entities {
		entityIDs[e.ID] = struct{}{}
	}
	fieldIDs := make(map[string]struct{}, len(snap.Fields))
	for _, f := range snap.Fields {
		fieldIDs[f.ID] = struct{}{}
	}

	warnings := []Warning{}
	for _, r := range snap.Records {
		if _, ok := entityIDs[r.EntityID]; !ok {
			warnings = append(warnings, Warning{
				Kind:    DanglingEntityRef,
				Subject: r.ID,
				Ref:     r.EntityID,
				Message: fmt.Sprintf("record %s references deleted entity %s", r.ID, r.EntityID),
			})
		}
		for key := range r.Data {
			if _, ok := fieldIDs[key]; !ok {
				warnings = append(warnings, Warning{
					Kind:    OrphanedValueKey,
					Subject: r.ID,
					Ref:     key,
					Message: fmt.Sprintf("record %s carries a value for deleted field %s", r.ID, key),
				})
			}
		}
	}

	for _, e := range snap.Entities {
		for _, fieldID := range e.Fields {
			if _, ok := fieldIDs[fieldID]; !ok {
				warnings = append(warnings, Warning{
					Kind:    DanglingFieldAssignment,
					Subject: e.ID,
					Ref:     fieldID,
					Message: fmt.Sprintf("entity %s is assigned deleted field %s", e.ID, fieldID),
				})
			}
		}
	}

	groups := make([]string, 0, len(snap.Config.EntityGroups))
	for group := range snap.Config.EntityGroups {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	for _, group := range groups {
		for _, entityID := range snap.Config.EntityGroups[group] {
			if _, ok := entityIDs[entityID]; !ok {
				warnings = append(warnings, Warning{
					Kind:    DanglingGroupMember,
					Subject: group,
					Ref:     entityID,
					Message: fmt.Sprintf("group %s lists deleted entity %s", group, entityID),
				})
			}
		}
	}

	return warnings
}
