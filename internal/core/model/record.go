package model

import (
	"context"
	"time"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/id"
)

// Record is one timestamped observation: an entity reference plus a
// flat map of field values keyed by field id. EntityID is a weak
// reference: the engine never validates it against the live entity set
// on read, and records pointing at a deleted entity are silently
// excluded from entity-scoped views (see integrity.Check).
type Record struct {
	ID        string    `json:"id"`
	EntityID  string    `json:"entityId"`
	Timestamp time.Time `json:"timestamp"`

	// Data maps field id to value (string, number or nil). Values for
	// deleted fields are not scrubbed and may linger as orphaned keys.
	Data map[string]any `json:"data"`
}

// NewRecord creates a Record with a fresh id, the current UTC instant
// and a shallow copy of data.
func NewRecord(entityID string, data map[string]any) *Record {
	return &Record{
		ID:        id.New(),
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Data:      copyData(data),
	}
}

// Has reports whether the record defines a value for fieldID.
// A present nil value counts as defined.
func (r *Record) Has(fieldID string) bool {
	_, ok := r.Data[fieldID]
	return ok
}

// Value returns the raw value for fieldID, nil when absent.
func (r *Record) Value(fieldID string) any {
	return r.Data[fieldID]
}

// Validate implements Validatable.
func (r *Record) Validate(ctx context.Context) error {
	if r.ID == "" {
		return apperror.NewValidation("record id is required").
			WithDetail("field", "id")
	}
	if r.EntityID == "" {
		return apperror.NewValidation("record entityId is required").
			WithDetail("field", "entityId")
	}
	if r.Data == nil {
		return apperror.NewValidation("record data must be a map").
			WithDetail("field", "data")
	}
	return nil
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	cp := *r
	cp.Data = copyData(r.Data)
	return &cp
}

func copyData(data map[string]any) map[string]any {
	cp := make(map[string]any, len(data))
	for k, v := range data {
		cp[k] = v
	}
	return cp
}
