package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ListLogs - GET /mandapams/:id/audit-logs?page=&limit=&action=&status=
// Admin-only (guarded by middleware.RequireAdmin on the route).
func (h *Handler) ListLogs(c *gin.Context) {
	mandapamID64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mandapam ID"})
		return
	}
	mandapamID := uint(mandapamID64)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := AuditLogFilter{
		MandapamID: &mandapamID,
		Action:     c.Query("action"),
		Status:     c.Query("status"),
		Page:       page,
		Limit:      limit,
	}

	logs, err := h.Service.GetAuditLogs(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch audit logs"})
		return
	}

	c.JSON(http.StatusOK, logs)
}
