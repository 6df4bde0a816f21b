package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/comparison"
	"fieldbook/internal/domain/entities"
	"fieldbook/internal/domain/fields"
	"fieldbook/internal/domain/integrity"
	"fieldbook/internal/domain/kpi"
	"fieldbook/internal/domain/records"
	"fieldbook/internal/domain/reports"
	"fieldbook/internal/domain/settings"
	"fieldbook/internal/domain/transfer"
	"fieldbook/internal/infrastructure/storage/memory"
	"fieldbook/pkg/logger"
)

func testRouter(t *testing.T) (*memory.Store, http.Handler) {
	t.Helper()
	store, err := memory.Open("")
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Store:  store,
		Logger: logger.Default(),

		Entities:   entities.NewService(store),
		Fields:     fields.NewService(store),
		Records:    records.NewService(store),
		Settings:   settings.NewService(store),
		Reports:    reports.NewService(store),
		Comparison: comparison.NewService(store),
		KPI:        kpi.NewService(store),
		Transfer:   transfer.NewService(store),
		Integrity:  integrity.NewService(store),
	})
	return store, router
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), "body: %s", rec.Body.String())
}

func TestEntityLifecycle(t *testing.T) {
	_, router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/entities", map[string]any{"name": "Alpha"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID     string   `json:"id"`
		Name   string   `json:"name"`
		Fields []string `json:"fields"`
	}
	decode(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{}, created.Fields)

	rec = doJSON(t, router, http.MethodPut, "/api/v1/entities/"+created.ID, map[string]any{"name": "Omega"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/entities/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &created)
	assert.Equal(t, "Omega", created.Name)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/entities/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":true}`, rec.Body.String())
}

func TestErrorBodyContract(t *testing.T) {
	_, router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/entities/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error   string         `json:"error"`
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	decode(t, rec, &body)
	assert.Equal(t, apperror.CodeNotFound, body.Code)
	assert.NotEmpty(t, body.Error)
	assert.Equal(t, "missing", body.Details["id"])
}

func TestValidationErrorOnBadBody(t *testing.T) {
	_, router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/entities", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code string `json:"code"`
	}
	decode(t, rec, &body)
	assert.Equal(t, apperror.CodeValidation, body.Code)
}

func seedReportData(t *testing.T, store *memory.Store) (fieldID string) {
	t.Helper()
	require.NoError(t, store.Update(context.Background(), func(snap *model.Snapshot) error {
		snap.Fields = []*model.Field{{ID: "f1", Name: "Weight", Type: model.TypeNumber}}
		snap.Entities = []*model.Entity{{ID: "e1", Name: "Alpha", Fields: []string{"f1"}}}
		snap.Records = []*model.Record{
			{ID: "r1", EntityID: "e1", Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Data: map[string]any{"f1": 10.0}},
			{ID: "r2", EntityID: "e1", Timestamp: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Data: map[string]any{"f1": 20.0}},
		}
		return nil
	}))
	return "f1"
}

func TestAggregateReportEndpoint(t *testing.T) {
	store, router := testRouter(t)
	fieldID := seedReportData(t, store)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/reports/aggregate", map[string]any{
		"fieldId":     fieldID,
		"aggregation": "sum",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report struct {
		Field    string `json:"field"`
		Entities []struct {
			Value float64 `json:"value"`
			Count int     `json:"count"`
		} `json:"entities"`
	}
	decode(t, rec, &report)
	assert.Equal(t, "Weight", report.Field)
	require.Len(t, report.Entities, 1)
	assert.Equal(t, 30.0, report.Entities[0].Value)
}

func TestAggregateReportEndpoint_AdvisoryPreconditionStatus(t *testing.T) {
	store, router := testRouter(t)
	seedReportData(t, store)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/reports/aggregate", map[string]any{
		"fieldId":     "deleted",
		"aggregation": "sum",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/reports/aggregate", map[string]any{
		"fieldId":     "f1",
		"aggregation": "sum",
		"criteria":    map[string]any{"entityId": "nobody"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Code string `json:"code"`
	}
	decode(t, rec, &body)
	assert.Equal(t, apperror.CodeNoMatchingEntities, body.Code)
}

func TestFilterEndpoint(t *testing.T) {
	store, router := testRouter(t)
	seedReportData(t, store)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/filter", map[string]any{
		"criteria": map[string]any{"fromDate": "2024-03-02"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out []struct {
		ID string `json:"id"`
	}
	decode(t, rec, &out)
	require.Len(t, out, 1)
	assert.Equal(t, "r2", out[0].ID)
}

func TestExportImportEndpoints(t *testing.T) {
	store, router := testRouter(t)
	seedReportData(t, store)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	exported := rec.Body.Bytes()

	fresh, router2 := testRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewReader(exported))
	rec2 := httptest.NewRecorder()
	router2.ServeHTTP(rec2, req)
	require.Equal(t, http.StatusOK, rec2.Code, rec2.Body.String())

	require.NoError(t, fresh.View(context.Background(), func(snap *model.Snapshot) error {
		assert.Len(t, snap.Records, 2)
		return nil
	}))
}

func TestHealthAndIntegrityEndpoints(t *testing.T) {
	store, router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, store.Update(context.Background(), func(snap *model.Snapshot) error {
		snap.Records = []*model.Record{
			{ID: "r1", EntityID: "ghost", Timestamp: time.Now().UTC(), Data: map[string]any{}},
		}
		return nil
	}))

	rec = doJSON(t, router, http.MethodGet, "/api/v1/integrity", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count    int `json:"count"`
		Warnings []struct {
			Kind string `json:"kind"`
		} `json:"warnings"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Warnings, 1)
	assert.Equal(t, "dangling_entity_ref", body.Warnings[0].Kind)
}

func TestRequestIDHeaderEcho(t *testing.T) {
	_, router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}
