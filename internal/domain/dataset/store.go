// Package dataset defines the narrow boundary between the engine and
// whatever persists the dataset. Registries never touch storage
// directly; they read and mutate the snapshot through a Store.
//
// The store is a single coordinator owning one mutable Snapshot.
// Whole-object read/mutate/write by unsynchronized callers is exactly
// the hazard this interface exists to prevent: all mutation happens
// inside Update under the store's exclusive lock.
package dataset

import (
	"context"

	"fieldbook/internal/core/model"
)

// Store owns the dataset snapshot.
type Store interface {
	// View runs fn with read access to the current snapshot. fn must
	// not mutate the snapshot or retain references past its return;
	// callers copy out what they need.
	View(ctx context.Context, fn func(*model.Snapshot) error) error

	// Update runs fn against a private copy of the snapshot under the
	// writer lock. When fn returns nil the copy becomes the new
	// current snapshot and is persisted atomically; any error leaves
	// the store untouched.
	Update(ctx context.Context, fn func(*model.Snapshot) error) error
}

// Get copies a value out of the snapshot under the read lock.
func Get[T any](ctx context.Context, s Store, fn func(*model.Snapshot) (T, error)) (T, error) {
	var out T
	err := s.View(ctx, func(snap *model.Snapshot) error {
		var err error
		out, err = fn(snap)
		return err
	})
	return out, err
}
