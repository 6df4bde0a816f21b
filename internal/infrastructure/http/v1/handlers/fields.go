package handlers

import (
	"github.com/gin-gonic/gin"

	"fieldbook/internal/domain/fields"
	"fieldbook/internal/infrastructure/http/v1/dto"
)

// FieldsHandler handles HTTP requests for field definitions.
type FieldsHandler struct {
	*BaseHandler
	service *fields.Service
}

// NewFieldsHandler creates a new fields handler.
func NewFieldsHandler(base *BaseHandler, service *fields.Service) *FieldsHandler {
	return &FieldsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /fields
func (h *FieldsHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromFields(items))
}

// Get handles GET /fields/:id
func (h *FieldsHandler) Get(c *gin.Context) {
	field, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromField(field))
}

// GetMany handles POST /fields/lookup. Unknown ids are dropped without
// error so stale assignment lists stay resolvable.
func (h *FieldsHandler) GetMany(c *gin.Context) {
	var req dto.FieldIDsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	items, err := h.service.GetMany(c.Request.Context(), req.FieldIDs)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromFields(items))
}

// Create handles POST /fields
func (h *FieldsHandler) Create(c *gin.Context) {
	var req dto.FieldRequest
	if !h.BindJSON(c, &req) {
		return
	}

	field, err := h.service.Create(c.Request.Context(), req.ToSpec())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromField(field))
}

// Update handles PUT /fields/:id
func (h *FieldsHandler) Update(c *gin.Context) {
	var req dto.FieldRequest
	if !h.BindJSON(c, &req) {
		return
	}

	field, err := h.service.Update(c.Request.Context(), c.Param("id"), req.ToSpec())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromField(field))
}

// Delete handles DELETE /fields/:id
func (h *FieldsHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.DeletedResponse{Deleted: deleted})
}

// SharedNumeric handles GET /shared-numeric-fields
func (h *FieldsHandler) SharedNumeric(c *gin.Context) {
	items, err := h.service.SharedNumeric(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromFields(items))
}
