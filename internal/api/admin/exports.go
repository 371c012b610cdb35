// exports.go implements the export stubs for the report screen. File generation
// has never shipped; the contract is that invoking an export never fails and
// always returns a success notification, whatever the state of the data.
package admin

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sevadesk/sevadesk/internal/db/models"
	"github.com/sevadesk/sevadesk/internal/db/repositories"
	"github.com/sevadesk/sevadesk/internal/telemetry"
)

// Export formats accepted in the :format route segment.
const (
	ExportFormatSpreadsheet = "spreadsheet"
	ExportFormatPDF         = "pdf"
)

// ExportsHandler handles report export requests
type ExportsHandler struct {
	audit        *repositories.AuditRepository
	auditEnabled bool
}

// NewExportsHandler creates a new exports handler
func NewExportsHandler(audit *repositories.AuditRepository, auditEnabled bool) *ExportsHandler {
	return &ExportsHandler{audit: audit, auditEnabled: auditEnabled}
}

// @Summary      Export registration report
// @Description  Queues a report export in the requested format. Currently a stub: no file is produced, but the call always succeeds so the screen's export buttons behave consistently.
// @Tags         Reports
// @Produce      json
// @Param        format  path  string  true  "Export format (spreadsheet or pdf)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}  "Unknown format"
// @Router       /api/v1/admin/reports/registrations/export/{format} [post]
// ExportRegistrationReport acknowledges an export request.
func (h *ExportsHandler) ExportRegistrationReport(c *gin.Context) {
	format := c.Param("format")
	if format != ExportFormatSpreadsheet && format != ExportFormatPDF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown export format: " + format})
		return
	}

	telemetry.ExportRequestsTotal.WithLabelValues(format).Inc()

	// Best-effort audit: a failed insert is logged and must never surface as an
	// export failure.
	if h.auditEnabled && h.audit != nil {
		ip := c.ClientIP()
		entry := &models.AuditLog{
			Action: "report.export",
			Metadata: map[string]interface{}{
				"format": format,
				"from":   c.Query("from"),
				"to":     c.Query("to"),
			},
			IPAddress: &ip,
		}
		if err := h.audit.CreateAuditLog(c.Request.Context(), entry); err != nil {
			slog.Warn("failed to record export audit entry", "format", format, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Report export started; you will be notified when it is ready",
	})
}
