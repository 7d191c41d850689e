package schedule

import (
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

func pathUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// ===========================
// 📅 Day Schedule - GET /mandapams/:id/schedule/:day
// ===========================
func (h *Handler) ListByDay(c *gin.Context) {
	mid, ok := pathUint(c, "id")
	if !ok {
		return
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
		return
	}

	evs, err := h.Service.ListByDay(mid, day)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": day, "events": evs, "count": len(evs)})
}

// ===========================
// ➕ Create Event - POST /mandapams/:id/schedule/:day/events
// ===========================
func (h *Handler) Create(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	mid, ok := pathUint(c, "id")
	if !ok {
		return
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ev, err := h.Service.Create(c.Request.Context(), identity, mid, day, &req, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ev)
}

// ===========================
// ✏️ Update Event - PUT /mandapams/:id/schedule/events/:eventID
// ===========================
func (h *Handler) Update(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	mid, ok := pathUint(c, "id")
	if !ok {
		return
	}
	eventID, ok := pathUint(c, "eventID")
	if !ok {
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ev, err := h.Service.Update(c.Request.Context(), identity, mid, eventID, &req, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ev)
}

// ===========================
// 🗑 Delete Event - DELETE /mandapams/:id/schedule/events/:eventID
// ===========================
func (h *Handler) Delete(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	mid, ok := pathUint(c, "id")
	if !ok {
		return
	}
	eventID, ok := pathUint(c, "eventID")
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), identity, mid, eventID, middleware.GetIPFromContext(c)); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// ===========================
// 📊 Schedule Overview - GET /mandapams/:id/schedule/overview
// ===========================
func (h *Handler) Overview(c *gin.Context) {
	mid, ok := pathUint(c, "id")
	if !ok {
		return
	}

	ov, err := h.Service.GetOverview(mid)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ov)
}
