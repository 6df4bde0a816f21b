package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldbook/internal/domain/transfer"
	"fieldbook/internal/infrastructure/http/v1/dto"
)

// TransferHandler handles dataset export and import.
type TransferHandler struct {
	*BaseHandler
	service *transfer.Service
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(base *BaseHandler, service *transfer.Service) *TransferHandler {
	return &TransferHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Export handles GET /export. With ?archive=true the dataset is
// streamed as a zstd-compressed archive instead of plain JSON.
func (h *TransferHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("archive") == "true" {
		c.Header("Content-Type", "application/zstd")
		c.Header("Content-Disposition", `attachment; filename="fieldbook.json.zst"`)
		c.Status(http.StatusOK)
		if err := h.service.ExportArchive(ctx, c.Writer); err != nil {
			h.Error(c, err)
		}
		return
	}

	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", `attachment; filename="fieldbook.json"`)
	c.Status(http.StatusOK)
	if err := h.service.Export(ctx, c.Writer); err != nil {
		h.Error(c, err)
	}
}

// Import handles POST /import. The body replaces the whole dataset
// after validation; with ?archive=true it is read as a zstd archive.
func (h *TransferHandler) Import(c *gin.Context) {
	ctx := c.Request.Context()

	var err error
	if c.Query("archive") == "true" {
		err = h.service.ImportArchive(ctx, c.Request.Body)
	} else {
		err = h.service.Import(ctx, c.Request.Body)
	}
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.SuccessResponse{Success: true, Message: "dataset imported"})
}
