package dto

import "fieldbook/internal/domain/filter"

// AggregateReportRequest asks for a per-entity or per-axis aggregation
// of one numeric field.
type AggregateReportRequest struct {
	FieldID           string          `json:"fieldId" binding:"required"`
	Aggregation       string          `json:"aggregation" binding:"required"`
	HorizontalFieldID string          `json:"horizontalFieldId"`
	Criteria          filter.Criteria `json:"criteria"`
}

// CompareRequest asks for a current-versus-previous window comparison
// over a set of fields.
type CompareRequest struct {
	FieldIDs    []string        `json:"fieldIds" binding:"required"`
	Aggregation string          `json:"aggregation"`
	FromDate    string          `json:"fromDate" binding:"required"`
	ToDate      string          `json:"toDate" binding:"required"`
	Criteria    filter.Criteria `json:"criteria"`
}

// KPIRequest asks for the KPI summary over a filtered record set.
type KPIRequest struct {
	FieldIDs []string        `json:"fieldIds"`
	Period   string          `json:"period"`
	Criteria filter.Criteria `json:"criteria"`
}

// FilterRequest previews the records matching a criteria set.
type FilterRequest struct {
	Criteria filter.Criteria `json:"criteria"`
}
