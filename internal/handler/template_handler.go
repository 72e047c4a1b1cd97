package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accessgate/internal/detect"
	"accessgate/internal/domain"
)

// TemplateHandler serves the supported record types and downloadable file
// templates.
type TemplateHandler struct {
	detector *detect.Detector
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(detector *detect.Detector) *TemplateHandler {
	return &TemplateHandler{detector: detector}
}

// Supported handles GET /bulk-upload/templates/supported.
func (h *TemplateHandler) Supported(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tables": h.detector.SupportedTables()})
}

// Template handles GET /bulk-upload/templates/:tableType.
func (h *TemplateHandler) Template(c *gin.Context) {
	tableType := c.Param("tableType")
	if !domain.IsValidTableType(tableType) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown table type"})
		return
	}

	data, filename, err := h.detector.Template(domain.TableType(tableType))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown table type"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}
