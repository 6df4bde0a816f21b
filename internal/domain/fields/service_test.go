package fields

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/model"
	"fieldbook/internal/infrastructure/storage/memory"
)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	store, err := memory.Open("")
	require.NoError(t, err)
	return store
}

func TestCreate(t *testing.T) {
	svc := NewService(newStore(t))
	ctx := context.Background()

	f, err := svc.Create(ctx, Spec{Name: "Weight", Type: model.TypeNumber, Required: true})
	require.NoError(t, err)
	assert.NotEmpty(t, f.ID)
	assert.True(t, f.IsNumeric())

	got, err := svc.Get(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weight", got.Name)
	assert.True(t, got.Required)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newStore(t))
	ctx := context.Background()

	tests := []struct {
		name string
		spec Spec
	}{
		{"empty name", Spec{Type: model.TypeNumber}},
		{"unknown type", Spec{Name: "X", Type: "date"}},
		{"select without options", Spec{Name: "Mood", Type: model.TypeSelect}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.spec)
			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
		})
	}
}

func TestGetMany_DropsUnknownPreservesOrder(t *testing.T) {
	svc := NewService(newStore(t))
	ctx := context.Background()

	a, err := svc.Create(ctx, Spec{Name: "A", Type: model.TypeText})
	require.NoError(t, err)
	b, err := svc.Create(ctx, Spec{Name: "B", Type: model.TypeNumber})
	require.NoError(t, err)

	got, err := svc.GetMany(ctx, []string{b.ID, "ghost", a.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, "A", got[1].Name)
}

func TestUpdate(t *testing.T) {
	svc := NewService(newStore(t))
	ctx := context.Background()

	f, err := svc.Create(ctx, Spec{Name: "Weight", Type: model.TypeNumber})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, f.ID, Spec{
		Name: "Mood", Type: model.TypeSelect, Options: []string{"good", "bad"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.TypeSelect, updated.Type)
	assert.Equal(t, []string{"good", "bad"}, updated.Options)

	_, err = svc.Update(ctx, "missing", Spec{Name: "X", Type: model.TypeText})
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdate_InvalidSpecLeavesFieldUntouched(t *testing.T) {
	svc := NewService(newStore(t))
	ctx := context.Background()

	f, err := svc.Create(ctx, Spec{Name: "Weight", Type: model.TypeNumber})
	require.NoError(t, err)

	_, err = svc.Update(ctx, f.ID, Spec{Name: "", Type: model.TypeNumber})
	require.Error(t, err)

	got, err := svc.Get(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weight", got.Name)
}

func TestDelete_ScrubsAssignmentsKeepsRecordData(t *testing.T) {
	store := newStore(t)
	svc := NewService(store)
	ctx := context.Background()

	f, err := svc.Create(ctx, Spec{Name: "Weight", Type: model.TypeNumber})
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, func(snap *model.Snapshot) error {
		snap.Entities = []*model.Entity{
			{ID: "e1", Name: "Alpha", Fields: []string{f.ID, "other"}},
		}
		snap.Records = []*model.Record{
			{ID: "r1", EntityID: "e1", Timestamp: time.Now().UTC(), Data: map[string]any{f.ID: 70.0}},
		}
		return nil
	}))

	deleted, err := svc.Delete(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	require.NoError(t, store.View(ctx, func(snap *model.Snapshot) error {
		assert.Empty(t, snap.Fields)
		assert.Equal(t, []string{"other"}, snap.Entities[0].Fields)
		// Orphaned values stay in place.
		assert.Contains(t, snap.Records[0].Data, f.ID)
		return nil
	}))

	deleted, err = svc.Delete(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSharedNumeric(t *testing.T) {
	store := newStore(t)
	svc := NewService(store)
	ctx := context.Background()

	shared, err := svc.Create(ctx, Spec{Name: "Weight", Type: model.TypeNumber})
	require.NoError(t, err)
	single, err := svc.Create(ctx, Spec{Name: "Dose", Type: model.TypeNumber})
	require.NoError(t, err)
	text, err := svc.Create(ctx, Spec{Name: "Note", Type: model.TypeText})
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, func(snap *model.Snapshot) error {
		snap.Entities = []*model.Entity{
			{ID: "e1", Name: "Alpha", Fields: []string{shared.ID, single.ID, text.ID}},
			{ID: "e2", Name: "Bravo", Fields: []string{shared.ID, text.ID}},
		}
		return nil
	}))

	got, err := svc.SharedNumeric(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, shared.ID, got[0].ID)
}
