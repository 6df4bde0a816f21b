package handlers

import (
	"github.com/gin-gonic/gin"

	"fieldbook/internal/domain/integrity"
)

// IntegrityHandler exposes the read-only consistency check.
type IntegrityHandler struct {
	*BaseHandler
	service *integrity.Service
}

// NewIntegrityHandler creates a new integrity handler.
func NewIntegrityHandler(base *BaseHandler, service *integrity.Service) *IntegrityHandler {
	return &IntegrityHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Check handles GET /integrity
func (h *IntegrityHandler) Check(c *gin.Context) {
	warnings, err := h.service.Check(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	if warnings == nil {
		warnings = []integrity.Warning{}
	}
	h.OK(c, gin.H{"warnings": warnings, "count": len(warnings)})
}
