package integrity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldbook/internal/core/model"
	"fieldbook/internal/infrastructure/storage/memory"
)

func kinds(warnings []Warning) map[WarningKind]int {
	out := map[WarningKind]int{}
	for _, w := range warnings {
		out[w.Kind]++
	}
	return out
}

func TestScan_CleanSnapshot(t *testing.T) {
	snap := model.NewSnapshot()
	snap.Fields = []*model.Field{{ID: "f1", Name: "Weight", Type: model.TypeNumber}}
	snap.Entities = []*model.Entity{{ID: "e1", Name: "Alpha", Fields: []string{"f1"}}}
	snap.Records = []*model.Record{
		{ID: "r1", EntityID: "e1", Timestamp: time.Now().UTC(), Data: map[string]any{"f1": 1.0}},
	}

	assert.Empty(t, Scan(snap))
}

func TestScan_FindsEveryGapKind(t *testing.T) {
	snap := model.NewSnapshot()
	snap.Fields = []*model.Field{{ID: "f1", Name: "Weight", Type: model.TypeNumber}}
	snap.Entities = []*model.Entity{
		{ID: "e1", Name: "Alpha", Fields: []string{"f1", "deleted-field"}},
	}
	snap.Records = []*model.Record{
		{ID: "r1", EntityID: "gone", Timestamp: time.Now().UTC(), Data: map[string]any{"f1": 1.0}},
		{ID: "r2", EntityID: "e1", Timestamp: time.Now().UTC(), Data: map[string]any{"orphan-key": 2.0}},
	}
	snap.Config.EntityGroups = map[string][]string{
		"pilot": {"e1", "gone-member"},
	}

	warnings := Scan(snap)
	got := kinds(warnings)
	assert.Equal(t, 1, got[DanglingEntityRef])
	assert.Equal(t, 1, got[DanglingFieldAssignment])
	assert.Equal(t, 1, got[OrphanedValueKey])
	assert.Equal(t, 1, got[DanglingGroupMember])
	assert.Len(t, warnings, 4)
}

func TestScan_GroupWarningsAreDeterministic(t *testing.T) {
	snap := model.NewSnapshot()
	snap.Config.EntityGroups = map[string][]string{
		"zulu":  {"ghost-z"},
		"alpha": {"ghost-a"},
	}

	first := Scan(snap)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Scan(snap))
	}
	require.Len(t, first, 2)
	assert.Equal(t, "alpha", first[0].Subject)
	assert.Equal(t, "zulu", first[1].Subject)
}

func TestCheck_ReadsWithoutRepairing(t *testing.T) {
	store, err := memory.Open("")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, func(snap *model.Snapshot) error {
		snap.Records = []*model.Record{
			{ID: "r1", EntityID: "gone", Timestamp: time.Now().UTC(), Data: map[string]any{}},
		}
		return nil
	}))

	svc := NewService(store)
	warnings, err := svc.Check(ctx)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, DanglingEntityRef, warnings[0].Kind)

	// The gap is reported, never repaired.
	require.NoError(t, store.View(ctx, func(snap *model.Snapshot) error {
		assert.Len(t, snap.Records, 1)
		return nil
	}))
}
