// Package transfer serializes the full dataset for backup and exchange.
// The export format is the snapshot as 2-space-indented JSON; import
// validates the document structurally before replacing the snapshot
// wholesale, so a failed import never leaves a partial dataset behind.
package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/dataset"
	"fieldbook/pkg/logger"
)

// Service provides dataset import and export.
type Service struct {
	store dataset.Store
}

// NewService creates a new transfer service.
func NewService(store dataset.Store) *Service {
	return &Service{store: store}
}

// Export writes the current snapshot as indented JSON.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	return s.store.View(ctx, func(snap *model.Snapshot) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		return nil
	})
}

// Import validates an exported document and replaces the snapshot with
// it. Validation covers the four top-level keys plus per-item structure;
// referential integrity is not checked here (see integrity.Check), so
// an import may carry dangling references just as the live dataset can.
func (s *Service) Import(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return apperror.NewValidation("unreadable import document").WithCause(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return apperror.NewValidation("import document is not a JSON object").WithCause(err)
	}
	for _, key := range []string{"config", "entities", "fields", "records"} {
		if _, ok := doc[key]; !ok {
			return apperror.NewValidation("import document is missing a required key").
				WithDetail("key", key)
		}
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return apperror.NewValidation("malformed import document").WithCause(err)
	}
	if err := validateSnapshot(ctx, &snap); err != nil {
		return err
	}

	err = s.store.Update(ctx, func(current *model.Snapshot) error {
		*current = *snap.Clone()
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "dataset imported",
		"entities", len(snap.Entities),
		"fields", len(snap.Fields),
		"records", len(snap.Records),
	)
	return nil
}

func validateSnapshot(ctx context.Context, snap *model.Snapshot) error {
	for i, e := range snap.Entities {
		if e == nil {
			return apperror.NewValidation("null entity in import").WithDetail("index", i)
		}
		if err := e.Validate(ctx); err != nil {
			return err
		}
	}
	for i, f := range snap.Fields {
		if f == nil {
			return apperror.NewValidation("null field in import").WithDetail("index", i)
		}
		if err := f.Validate(ctx); err != nil {
			return err
		}
	}
	for i, r := range snap.Records {
		if r == nil {
			return apperror.NewValidation("null record in import").WithDetail("index", i)
		}
		if err := r.Validate(ctx); err != nil {
			return err
		}
	}
	return nil
}
