// Package model defines the dataset shapes shared by every registry and
// engine: entities (tracked subjects), fields (typed attribute
// definitions), records (timestamped observations) and the process-wide
// config, bundled into one persistable Snapshot.
package model

import (
	"context"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/id"
)

// Entity is a tracked subject with an ordered list of assigned field ids.
// The list is an assignment, not ownership: field definitions live in
// the field registry, and the list is not revalidated against it after
// assignment time.
type Entity struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Fields holds assigned field ids in display order. Duplicates are
	// allowed and counted as separate occurrences by SharedNumeric.
	Fields []string `json:"fields"`
}

// NewEntity creates an Entity with a fresh id and an empty field list.
func NewEntity(name string) *Entity {
	return &Entity{
		ID:     id.New(),
		Name:   name,
		Fields: []string{},
	}
}

// Validate implements Validatable.
func (e *Entity) Validate(ctx context.Context) error {
	if e.ID == "" {
		return apperror.NewValidation("entity id is required").
			WithDetail("field", "id")
	}
	if e.Name == "" {
		return apperror.NewValidation("entity name is required").
			WithDetail("field", "name")
	}
	return nil
}

// HasField reports whether fieldID appears in the assignment list.
func (e *Entity) HasField(fieldID string) bool {
	for _, f := range e.Fields {
		if f == fieldID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (e *Entity) Clone() *Entity {
	cp := *e
	cp.Fields = append([]string{}, e.Fields...)
	return &cp
}

// Validatable is implemented by model types that support self-validation.
type Validatable interface {
	// Validate checks internal invariants (without store access).
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}
