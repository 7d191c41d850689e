package reports

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func writeDownload(c *gin.Context, data []byte, filename, contentType string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}

// ===========================
// 📄 Export Expenses - GET /reports/expenses?format=csv|excel|pdf
// ===========================
func (h *Handler) ExportExpenses(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	data, filename, contentType, err := h.Service.ExportExpenses(identity, format)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	writeDownload(c, data, filename, contentType)
}

// ===========================
// 📄 Export Volunteer Roster - GET /mandapams/:id/reports/volunteers?format=csv|excel|pdf
// ===========================
func (h *Handler) ExportVolunteers(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mandapam ID"})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	data, filename, contentType, err := h.Service.ExportVolunteers(c.Request.Context(), identity, uint(id), format, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	writeDownload(c, data, filename, contentType)
}
