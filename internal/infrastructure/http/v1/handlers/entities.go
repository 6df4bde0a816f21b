package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldbook/internal/domain/entities"
	"fieldbook/internal/infrastructure/http/v1/dto"
)

// EntitiesHandler handles HTTP requests for tracked entities.
type EntitiesHandler struct {
	*BaseHandler
	service *entities.Service
}

// NewEntitiesHandler creates a new entities handler.
func NewEntitiesHandler(base *BaseHandler, service *entities.Service) *EntitiesHandler {
	return &EntitiesHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /entities. The optional group query restricts the
// listing to a configured entity group.
func (h *EntitiesHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if group := c.Query("group"); group != "" {
		items, err := h.service.ListByGroup(ctx, group)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, dto.FromEntities(items))
		return
	}

	items, err := h.service.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromEntities(items))
}

// Get handles GET /entities/:id
func (h *EntitiesHandler) Get(c *gin.Context) {
	entity, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromEntity(entity))
}

// Create handles POST /entities
func (h *EntitiesHandler) Create(c *gin.Context) {
	var req dto.CreateEntityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromEntity(entity))
}

// Rename handles PUT /entities/:id
func (h *EntitiesHandler) Rename(c *gin.Context) {
	var req dto.RenameEntityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := h.service.Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromEntity(entity))
}

// Delete handles DELETE /entities/:id
func (h *EntitiesHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.DeletedResponse{Deleted: deleted})
}

// AssignFields handles PUT /entities/:id/fields
func (h *EntitiesHandler) AssignFields(c *gin.Context) {
	var req dto.AssignFieldsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := h.service.AssignFields(c.Request.Context(), c.Param("id"), req.FieldIDs)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromEntity(entity))
}

// Groups handles GET /entity-groups
func (h *EntitiesHandler) Groups(c *gin.Context) {
	groups, err := h.service.Groups(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}
