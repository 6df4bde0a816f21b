package handlers

import (
	"github.com/gin-gonic/gin"

	"fieldbook/internal/domain/records"
	"fieldbook/internal/infrastructure/http/v1/dto"
)

// RecordsHandler handles HTTP requests for data records.
type RecordsHandler struct {
	*BaseHandler
	service *records.Service
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(base *BaseHandler, service *records.Service) *RecordsHandler {
	return &RecordsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /records
func (h *RecordsHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromRecords(items))
}

// Recent handles GET /records/recent
func (h *RecordsHandler) Recent(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", records.DefaultRecentLimit)

	items, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromRecords(items))
}

// Get handles GET /records/:id
func (h *RecordsHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromRecord(record))
}

// Create handles POST /records
func (h *RecordsHandler) Create(c *gin.Context) {
	var req dto.CreateRecordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	record, err := h.service.Create(c.Request.Context(), req.EntityID, req.Data)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromRecord(record))
}

// Update handles PUT /records/:id
func (h *RecordsHandler) Update(c *gin.Context) {
	var req dto.UpdateRecordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), req.Data, req.Timestamp)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.SuccessResponse{Success: updated})
}

// UpdateDate handles PUT /records/:id/date
func (h *RecordsHandler) UpdateDate(c *gin.Context) {
	var req dto.UpdateRecordDateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	record, err := h.service.UpdateDate(c.Request.Context(), c.Param("id"), req.Timestamp)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromRecord(record))
}

// Delete handles DELETE /records/:id
func (h *RecordsHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.DeletedResponse{Deleted: deleted})
}

// Filter handles POST /filter. Returns the records matching the
// criteria without touching the dataset.
func (h *RecordsHandler) Filter(c *gin.Context) {
	var req dto.FilterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	items, err := h.service.Filter(c.Request.Context(), req.Criteria)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromRecords(items))
}
