// Package memory provides the in-process dataset store, optionally
// backed by a JSON file so a single-node deployment survives restarts.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/dataset"
)

var tracer = otel.Tracer("fieldbook/storage/memory")

// Compile-time check that Store implements dataset.Store.
var _ dataset.Store = (*Store)(nil)

// Store keeps the snapshot in memory behind a single RWMutex.
// One writer at a time; failed updates leave the state untouched.
type Store struct {
	mu   sync.RWMutex
	snap *model.Snapshot

	// path is the backing JSON file; empty means ephemeral.
	path string
}

// Open creates a Store. When path is non-empty and the file exists the
// snapshot is loaded from it; a fresh store starts from defaults.
func Open(path string) (*Store, error) {
	s := &Store{
		snap: model.NewSnapshot(),
		path: path,
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode dataset file %s: %w", path, err)
	}
	normalize(&snap)
	s.snap = &snap
	return s, nil
}

// View implements dataset.Store.
func (s *Store) View(ctx context.Context, fn func(*model.Snapshot) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.snap)
}

// Update implements dataset.Store.
func (s *Store) Update(ctx context.Context, fn func(*model.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	if err := fn(next); err != nil {
		return err
	}
	normalize(next)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.snap = next
	return nil
}

// persist writes the snapshot to the backing file, atomically via a
// temp file rename. The on-disk format matches the transfer export
// (2-space indented JSON), so a dataset file is itself a valid export.
func (s *Store) persist(ctx context.Context, snap *model.Snapshot) error {
	if s.path == "" {
		return nil
	}

	_, span := tracer.Start(ctx, "store.persist")
	span.SetAttributes(
		attribute.Int("entities", len(snap.Entities)),
		attribute.Int("records", len(snap.Records)),
	)
	defer span.End()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write dataset file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace dataset file: %w", err)
	}
	return nil
}

// normalize repairs nil collections after JSON decoding or careless
// mutators so the rest of the engine can range without nil checks.
func normalize(snap *model.Snapshot) {
	if snap.Entities == nil {
		snap.Entities = []*model.Entity{}
	}
	if snap.Fields == nil {
		snap.Fields = []*model.Field{}
	}
	if snap.Records == nil {
		snap.Records = []*model.Record{}
	}
	if snap.Config.KPIFields == nil {
		snap.Config.KPIFields = []string{}
	}
	for _, e := range snap.Entities {
		if e.Fields == nil {
			e.Fields = []string{}
		}
	}
	for _, r := range snap.Records {
		if r.Data == nil {
			r.Data = map[string]any{}
		}
	}
}
