package kpi

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

func at(s string) time.Time {
	ts, err := time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return ts
}

func kpiRecords() []*model.Record {
	return []*model.Record{
		{ID: "r1", EntityID: "e1", Timestamp: at("2024-03-01 08:00"), Data: map[string]any{"f1": 10.0}},
		{ID: "r2", EntityID: "e1", Timestamp: at("2024-03-01 20:00"), Data: map[string]any{"f1": 20.0}},
		{ID: "r3", EntityID: "e2", Timestamp: at("2024-03-02 09:00"), Data: map[string]any{"f1": 5.0}},
		{ID: "r4", EntityID: "e2", Timestamp: at("2024-04-15 09:00"), Data: map[string]any{"f1": 1.0}},
	}
}

func TestBasicMetrics(t *testing.T) {
	m := BasicMetrics(kpiRecords())

	assert.Equal(t, 4, m.Count)
	assert.Equal(t, 2, m.UniqueEntities)
	// 4 records across 3 distinct calendar days.
	assert.InDelta(t, 4.0/3.0, m.DailyAvg, 1e-9)
}

func TestBasicMetrics_Empty(t *testing.T) {
	m := BasicMetrics(nil)
	assert.Equal(t, Metrics{}, m)
}

func TestGroupByPeriod(t *testing.T) {
	records := kpiRecords()

	byDay := GroupByPeriod(records, "f1", ByDay)
	assert.Equal(t, Bucket{Sum: 30, Count: 2}, byDay["2024-03-01"])
	assert.Equal(t, Bucket{Sum: 5, Count: 1}, byDay["2024-03-02"])

	byMonth := GroupByPeriod(records, "f1", ByMonth)
	assert.Equal(t, Bucket{Sum: 35, Count: 3}, byMonth["2024-03"])
	assert.Equal(t, Bucket{Sum: 1, Count: 1}, byMonth["2024-04"])

	byYear := GroupByPeriod(records, "f1", ByYear)
	assert.Equal(t, Bucket{Sum: 36, Count: 4}, byYear["2024"])
}

func TestGroupByPeriod_MissingValuesCountAsZero(t *testing.T) {
	records := []*model.Record{
		{ID: "r1", EntityID: "e1", Timestamp: at("2024-03-01 08:00"), Data: map[string]any{"f1": 10.0}},
		{ID: "r2", EntityID: "e1", Timestamp: at("2024-03-01 09:00"), Data: map[string]any{}},
	}
	byDay := GroupByPeriod(records, "f1", ByDay)
	assert.Equal(t, Bucket{Sum: 10, Count: 2}, byDay["2024-03-01"])
}

func kpiStore(t *testing.T) *memory.Store {
	t.Helper()
	store, err := memory.Open("")
	require.NoError(t, err)
	require.NoError(t, store.Update(context.Background(), func(snap *model.Snapshot) error {
		snap.Fields = []*model.Field{
			{ID: "f1", Name: "Weight", Type: model.TypeNumber},
		}
		snap.Entities = []*model.Entity{
			{ID: "e1", Name: "Alpha", Fields: []string{"f1"}},
			{ID: "e2", Name: "Bravo", Fields: []string{"f1"}},
		}
		snap.Records = kpiRecords()
		snap.Config.KPIFields = []string{"f1"}
		return nil
	}))
	return store
}

func TestSummary_UsesConfiguredKPIFields(t *testing.T) {
	svc := NewService(kpiStore(t))

	summary, err := svc.Summary(context.Background(), filter.Criteria{}, nil, "")
	require.NoError(t, err)

	assert.Equal(t, ByDay, summary.Period)
	assert.Equal(t, 4, summary.Metrics.Count)
	require.Contains(t, summary.Series, "f1")
	assert.Equal(t, Bucket{Sum: 30, Count: 2}, summary.Series["f1"]["2024-03-01"])
}

func TestSummary_CriteriaRestrictsRecords(t *testing.T) {
	svc := NewService(kpiStore(t))

	summary, err := svc.Summary(context.Background(),
		filter.Criteria{EntityID: "e2"}, []string{"f1"}, ByMonth)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Metrics.Count)
	assert.Equal(t, 1, summary.Metrics.UniqueEntities)
	assert.Equal(t, Bucket{Sum: 5, Count: 1}, summary.Series["f1"]["2024-03"])
}

func TestSummary_UnknownFieldSkipped(t *testing.T) {
	svc := NewService(kpiStore(t))

	summary, err := svc.Summary(context.Background(), filter.Criteria{}, []string{"nope"}, ByDay)
	require.NoError(t, err)
	assert.Empty(t, summary.Series)
}

func TestSummary_InvalidPeriod(t *testing.T) {
	svc := NewService(kpiStore(t))

	_, err := svc.Summary(context.Background(), filter.Criteria{}, nil, "week")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}
