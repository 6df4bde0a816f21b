package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/model"
)

func rec(id, entityID, day string, data map[string]any) *model.Record {
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", day, time.UTC)
	if err != nil {
		panic(err)
	}
	return &model.Record{ID: id, EntityID: entityID, Timestamp: ts, Data: data}
}

func testRecords() []*model.Record {
	return []*model.Record{
		rec("r1", "e1", "2024-03-01 00:00:00", map[string]any{"weight": 70.0}),
		rec("r2", "e1", "2024-03-05 23:59:59", map[string]any{"weight": 71.5}),
		rec("r3", "e2", "2024-03-05 12:00:00", map[string]any{"weight": 80.0}),
		rec("r4", "e3", "2024-03-10 08:30:00", nil),
	}
}

func ids(records []*model.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestApply_EmptyCriteriaIsIdentity(t *testing.T) {
	records := testRecords()
	got, err := Apply(records, Criteria{})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, ids(got))
}

func TestApply_SingleEntity(t *testing.T) {
	got, err := Apply(testRecords(), Criteria{EntityID: "e1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, ids(got))
}

func TestApplyMultiple_EntitySet(t *testing.T) {
	got, err := ApplyMultiple(testRecords(), Criteria{EntityIDs: []string{"e2", "e3"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"r3", "r4"}, ids(got))
}

func TestApplyMultiple_EmptySetIsNoFilter(t *testing.T) {
	got, err := ApplyMultiple(testRecords(), Criteria{EntityIDs: []string{}})
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestApply_DateRangeInclusive(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "from includes start of day",
			criteria: Criteria{FromDate: "2024-03-05"},
			want:     []string{"r2", "r3", "r4"},
		},
		{
			name:     "to includes end of day",
			criteria: Criteria{ToDate: "2024-03-05"},
			want:     []string{"r1", "r2", "r3"},
		},
		{
			name:     "both bounds",
			criteria: Criteria{FromDate: "2024-03-02", ToDate: "2024-03-09"},
			want:     []string{"r2", "r3"},
		},
		{
			name:     "time portion in bound is ignored",
			criteria: Criteria{ToDate: "2024-03-05T00:00:00Z"},
			want:     []string{"r1", "r2", "r3"},
		},
		{
			name:     "single day window",
			criteria: Criteria{FromDate: "2024-03-05", ToDate: "2024-03-05"},
			want:     []string{"r2", "r3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(testRecords(), tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_InvalidDateIsValidationError(t *testing.T) {
	_, err := Apply(testRecords(), Criteria{FromDate: "03/01/2024"})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	records := testRecords()
	_, err := Apply(records, Criteria{EntityID: "e1"})
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestApply_Expression(t *testing.T) {
	got, err := Apply(testRecords(), Criteria{Expression: `double(data["weight"]) > 75.0`})
	require.NoError(t, err)
	// r4 has no weight key, so evaluation fails and excludes it.
	assert.Equal(t, []string{"r3"}, ids(got))
}

func TestApply_ExpressionConjunctiveWithEntity(t *testing.T) {
	got, err := Apply(testRecords(), Criteria{
		EntityID:   "e1",
		Expression: `double(data["weight"]) > 71.0`,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, ids(got))
}

func TestCompile_RejectsBadExpressions(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"syntax error", `data[`},
		{"non-boolean result", `entityId`},
		{"unknown variable", `unknownVar == 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expr)
			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
		})
	}
}

func TestIsZero(t *testing.T) {
	assert.True(t, Criteria{}.IsZero())
	assert.False(t, Criteria{EntityID: "e1"}.IsZero())
	assert.False(t, Criteria{Expression: "true"}.IsZero())
}
