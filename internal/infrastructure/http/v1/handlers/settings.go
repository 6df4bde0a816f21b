package handlers

import (
	"github.com/gin-gonic/gin"

	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/settings"
	"fieldbook/internal/infrastructure/http/v1/dto"
)

// SettingsHandler handles HTTP requests for workspace settings.
type SettingsHandler struct {
	*BaseHandler
	service *settings.Service
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(base *BaseHandler, service *settings.Service) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Get handles GET /settings
func (h *SettingsHandler) Get(c *gin.Context) {
	cfg, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromConfig(cfg))
}

// Update handles PUT /settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cfg, err := h.service.Update(c.Request.Context(), func(cfg *model.Config) {
		req.ApplyTo(cfg)
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromConfig(cfg))
}

// SetEntityGroup handles PUT /entity-groups/:name. An empty member
// list removes the group.
func (h *SettingsHandler) SetEntityGroup(c *gin.Context) {
	var req dto.EntityGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cfg, err := h.service.SetEntityGroup(c.Request.Context(), c.Param("name"), req.EntityIDs)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromConfig(cfg))
}
