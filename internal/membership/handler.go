package membership

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

func mandapamID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mandapam ID"})
		return 0, false
	}
	return uint(id), true
}

// ===========================
// 📝 Submit Join Request - POST /mandapams/:id/join-requests
// ===========================
func (h *Handler) SubmitJoinRequest(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	mid, ok := mandapamID(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	jr, err := h.Service.SubmitJoinRequest(identity, mid, &req)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, jr)
}

// ===========================
// 📋 List Join Requests - GET /mandapams/:id/join-requests?status=pending
// ===========================
func (h *Handler) ListJoinRequests(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	mid, ok := mandapamID(c)
	if !ok {
		return
	}

	reqs, err := h.Service.ListJoinRequests(identity, mid, c.Query("status"))
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": reqs, "count": len(reqs)})
}

// ===========================
// ✅ Decide Join Request - PATCH /mandapams/:id/join-requests/:requestID
// ===========================
func (h *Handler) SetRequestStatus(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	mid, ok := mandapamID(c)
	if !ok {
		return
	}
	reqID, err := strconv.Atoi(c.Param("requestID"))
	if err != nil || reqID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	jr, err := h.Service.SetRequestStatus(c.Request.Context(), identity, mid, uint(reqID), req.Status, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, jr)
}

// ===========================
// 👥 List Approved Members - GET /mandapams/:id/members
// ===========================
func (h *Handler) ListMembers(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	mid, ok := mandapamID(c)
	if !ok {
		return
	}

	members, err := h.Service.ListApprovedMembers(identity, mid)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members, "count": len(members)})
}

// ===========================
// 🛠 Assign Volunteer Role - POST /mandapams/:id/volunteers
// ===========================
func (h *Handler) AssignRole(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	mid, ok := mandapamID(c)
	if !ok {
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	a, err := h.Service.AssignRole(c.Request.Context(), identity, mid, &req, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, a)
}

// ===========================
// 🗑 Revoke Volunteer Role - DELETE /mandapams/:id/volunteers/:userID
// ===========================
func (h *Handler) RevokeAssignment(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	mid, ok := mandapamID(c)
	if !ok {
		return
	}
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil || userID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	if err := h.Service.RevokeAssignment(c.Request.Context(), identity, mid, uint(userID), middleware.GetIPFromContext(c)); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "volunteer role revoked"})
}

// ===========================
// 🌐 List Volunteers - GET /mandapams/:id/volunteers (public)
// ===========================
func (h *Handler) ListVolunteers(c *gin.Context) {
	mid, ok := mandapamID(c)
	if !ok {
		return
	}

	as, err := h.Service.ListVolunteers(mid)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"volunteers": as, "count": len(as)})
}
