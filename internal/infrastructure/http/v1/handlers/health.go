// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/dataset"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	store dataset.Store
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store dataset.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (can the dataset be read?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	err := h.store.View(c.Request.Context(), func(*model.Snapshot) error {
		return nil
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"dataset": "unhealthy: " + err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"dataset": "healthy",
		},
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	var counts gin.H
	_ = h.store.View(c.Request.Context(), func(snap *model.Snapshot) error {
		counts = gin.H{
			"entities": len(snap.Entities),
			"fields":   len(snap.Fields),
			"records":  len(snap.Records),
		}
		return nil
	})

	c.JSON(http.StatusOK, gin.H{
		"app":     "fieldbook",
		"version": "0.1.0",
		"dataset": counts,
	})
}
