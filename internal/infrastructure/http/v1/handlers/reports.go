package handlers

import (
	"github.com/gin-gonic/gin"

	"fieldbook/internal/domain/comparison"
	"fieldbook/internal/domain/kpi"
	"fieldbook/internal/domain/reports"
	"fieldbook/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports: aggregation,
// period comparison and KPI summaries.
type ReportsHandler struct {
	*BaseHandler
	reports    *reports.Service
	comparison *comparison.Service
	kpi        *kpi.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(
	base *BaseHandler,
	reportsSvc *reports.Service,
	comparisonSvc *comparison.Service,
	kpiSvc *kpi.Service,
) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		reports:     reportsSvc,
		comparison:  comparisonSvc,
		kpi:         kpiSvc,
	}
}

// Aggregate handles POST /reports/aggregate
func (h *ReportsHandler) Aggregate(c *gin.Context) {
	var req dto.AggregateReportRequest
	if !h.BindJSON(c, &req) {
		return
	}

	report, err := h.reports.Generate(
		c.Request.Context(),
		req.FieldID,
		reports.Aggregation(req.Aggregation),
		req.Criteria,
		req.HorizontalFieldID,
	)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// Compare handles POST /reports/compare
func (h *ReportsHandler) Compare(c *gin.Context) {
	var req dto.CompareRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.comparison.Run(
		c.Request.Context(),
		req.FieldIDs,
		comparison.Reducer(req.Aggregation),
		req.FromDate,
		req.ToDate,
		req.Criteria,
	)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// KPI handles POST /reports/kpi
func (h *ReportsHandler) KPI(c *gin.Context) {
	var req dto.KPIRequest
	if !h.BindJSON(c, &req) {
		return
	}

	summary, err := h.kpi.Summary(
		c.Request.Context(),
		req.Criteria,
		req.FieldIDs,
		kpi.Period(req.Period),
	)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}
