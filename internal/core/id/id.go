// Package id provides opaque string identifiers backed by UUIDv7.
// UUIDv7 is time-ordered, so freshly created entities and records sort
// naturally by creation time.
package id

import (
	"github.com/google/uuid"
)

// New generates a new opaque identifier.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to V4 if V7 fails (should never happen)
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether s parses as a UUID.
// Imported datasets may carry foreign id schemes, so callers treat this
// as advisory, not a hard gate.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
