package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/filter"
	"fieldbook/internal/infrastructure/storage/memory"
)

func seedStore(t *testing.T, build func(snap *model.Snapshot)) *memory.Store {
	t.Helper()
	store, err := memory.Open("")
	require.NoError(t, err)
	require.NoError(t, store.Update(context.Background(), func(snap *model.Snapshot) error {
		build(snap)
		return nil
	}))
	return store
}

func day(s string) time.Time {
	ts, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return ts
}

func baseSnapshot(snap *model.Snapshot) {
	snap.Fields = []*model.Field{
		{ID: "f1", Name: "Weight", Type: model.TypeNumber},
		{ID: "f2", Name: "Mood", Type: model.TypeSelect, Options: []string{"good", "bad"}},
		{ID: "f3", Name: "Site", Type: model.TypeText},
	}
	snap.Entities = []*model.Entity{
		{ID: "e1", Name: "Alpha", Fields: []string{"f1", "f2", "f3"}},
		{ID: "e2", Name: "Bravo", Fields: []string{"f1", "f3"}},
		{ID: "e3", Name: "Charlie", Fields: []string{"f2"}},
	}
	snap.Records = []*model.Record{
		{ID: "r1", EntityID: "e1", Timestamp: day("2024-03-01"), Data: map[string]any{"f1": 10.0, "f3": "north"}},
		{ID: "r2", EntityID: "e1", Timestamp: day("2024-03-02"), Data: map[string]any{"f1": 20.0, "f3": "south"}},
		{ID: "r3", EntityID: "e2", Timestamp: day("2024-03-03"), Data: map[string]any{"f1": 5.0, "f3": "north"}},
		{ID: "r4", EntityID: "e3", Timestamp: day("2024-03-04"), Data: map[string]any{"f2": "good"}},
	}
}

func TestGenerate_SumPerEntity(t *testing.T) {
	svc := NewService(seedStore(t, baseSnapshot))

	report, err := svc.Generate(context.Background(), "f1", AggSum, filter.Criteria{}, "")
	require.NoError(t, err)

	assert.Equal(t, "Weight", report.Field)
	require.Len(t, report.Entities, 2)
	assert.Equal(t, Row{ID: "e1", Name: "Alpha", Value: 30, Count: 2}, report.Entities[0])
	assert.Equal(t, Row{ID: "e2", Name: "Bravo", Value: 5, Count: 1}, report.Entities[1])
}

func TestGenerate_AveragePerEntity(t *testing.T) {
	svc := NewService(seedStore(t, baseSnapshot))

	report, err := svc.Generate(context.Background(), "f1", AggAverage, filter.Criteria{}, "")
	require.NoError(t, err)
	assert.Equal(t, 15.0, report.Entities[0].Value)
}

func TestGenerate_EntityWithoutRecordsGetsZeroRow(t *testing.T) {
	svc := NewService(seedStore(t, func(snap *model.Snapshot) {
		baseSnapshot(snap)
		// Window past every record: qualifying entities still show up.
	}))

	report, err := svc.Generate(context.Background(), "f1", AggSum,
		filter.Criteria{FromDate: "2025-01-01"}, "")
	require.NoError(t, err)

	require.Len(t, report.Entities, 2)
	for _, row := range report.Entities {
		assert.Equal(t, 0.0, row.Value)
		assert.Equal(t, 0, row.Count)
	}
}

func TestGenerate_UnparseableValueCoercesToZeroButCounts(t *testing.T) {
	svc := NewService(seedStore(t, func(snap *model.Snapshot) {
		baseSnapshot(snap)
		snap.Records = append(snap.Records, &model.Record{
			ID: "r5", EntityID: "e2", Timestamp: day("2024-03-05"),
			Data: map[string]any{"f1": "garbage"},
		})
	}))

	report, err := svc.Generate(context.Background(), "f1", AggSum, filter.Criteria{}, "")
	require.NoError(t, err)
	assert.Equal(t, Row{ID: "e2", Name: "Bravo", Value: 5, Count: 2}, report.Entities[1])
}

func TestGenerate_PreconditionErrors(t *testing.T) {
	svc := NewService(seedStore(t, baseSnapshot))
	ctx := context.Background()

	tests := []struct {
		name     string
		fieldID  string
		agg      Aggregation
		criteria filter.Criteria
		axisID   string
		wantCode string
	}{
		{"unknown aggregation", "f1", "median", filter.Criteria{}, "", apperror.CodeValidation},
		{"missing field", "nope", AggSum, filter.Criteria{}, "", apperror.CodeNotFound},
		{"non-numeric field", "f2", AggSum, filter.Criteria{}, "", apperror.CodeFieldType},
		{"missing axis", "f1", AggSum, filter.Criteria{}, "nope", apperror.CodeInvalidAxisField},
		{"no qualifying entities", "f1", AggSum, filter.Criteria{EntityID: "e3"}, "", apperror.CodeNoMatchingEntities},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(ctx, tt.fieldID, tt.agg, tt.criteria, tt.axisID)
			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestGenerate_HorizontalAxisFirstSeenOrder(t *testing.T) {
	svc := NewService(seedStore(t, baseSnapshot))

	report, err := svc.Generate(context.Background(), "f1", AggSum, filter.Criteria{}, "f3")
	require.NoError(t, err)

	assert.Equal(t, "Site", report.HorizontalField)
	require.Len(t, report.Entities, 2)
	// north appears first in the record sequence, so it leads.
	assert.Equal(t, Row{ID: "north", Name: "north", Value: 15, Count: 2}, report.Entities[0])
	assert.Equal(t, Row{ID: "south", Name: "south", Value: 20, Count: 1}, report.Entities[1])
}

func TestGenerate_AxisSkipsRecordsWithoutAxisKey(t *testing.T) {
	svc := NewService(seedStore(t, func(snap *model.Snapshot) {
		baseSnapshot(snap)
		snap.Records = append(snap.Records, &model.Record{
			ID: "r6", EntityID: "e1", Timestamp: day("2024-03-06"),
			Data: map[string]any{"f1": 99.0},
		})
	}))

	report, err := svc.Generate(context.Background(), "f1", AggSum, filter.Criteria{}, "f3")
	require.NoError(t, err)
	total := 0.0
	for _, row := range report.Entities {
		total += row.Value
	}
	assert.Equal(t, 35.0, total)
}

func TestGenerate_AxisNumericLabelsNormalize(t *testing.T) {
	svc := NewService(seedStore(t, func(snap *model.Snapshot) {
		snap.Fields = []*model.Field{
			{ID: "f1", Name: "Weight", Type: model.TypeNumber},
			{ID: "f4", Name: "Dose", Type: model.TypeNumber},
		}
		snap.Entities = []*model.Entity{
			{ID: "e1", Name: "Alpha", Fields: []string{"f1", "f4"}},
		}
		snap.Records = []*model.Record{
			{ID: "r1", EntityID: "e1", Timestamp: day("2024-03-01"), Data: map[string]any{"f1": 1.0, "f4": 5.0}},
			{ID: "r2", EntityID: "e1", Timestamp: day("2024-03-02"), Data: map[string]any{"f1": 2.0, "f4": 5}},
		}
	}))

	report, err := svc.Generate(context.Background(), "f1", AggSum, filter.Criteria{}, "f4")
	require.NoError(t, err)
	// 5 and 5.0 are the same group.
	require.Len(t, report.Entities, 1)
	assert.Equal(t, "5", report.Entities[0].ID)
	assert.Equal(t, 3.0, report.Entities[0].Value)
}

func TestGenerate_DateCriteriaRestrictsRecords(t *testing.T) {
	svc := NewService(seedStore(t, baseSnapshot))

	report, err := svc.Generate(context.Background(), "f1", AggSum,
		filter.Criteria{FromDate: "2024-03-02", ToDate: "2024-03-03"}, "")
	require.NoError(t, err)
	assert.Equal(t, 20.0, report.Entities[0].Value)
	assert.Equal(t, 5.0, report.Entities[1].Value)
}
