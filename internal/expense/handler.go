package expense

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

// ===========================
// 💰 Add Expense - POST /expenses (multipart)
// ===========================
func (h *Handler) Add(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req AddRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	// Receipt is optional
	receipt, _ := c.FormFile("receipt")

	e, err := h.Service.Add(c.Request.Context(), identity, &req, receipt)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, e)
}

// ===========================
// 📋 List Expenses - GET /expenses
// ===========================
func (h *Handler) List(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	es, err := h.Service.List(identity)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": es, "count": len(es)})
}

// ===========================
// 🗑 Delete Expense - DELETE /expenses/:expenseID
// ===========================
func (h *Handler) Delete(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	id, err := strconv.Atoi(c.Param("expenseID"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense ID"})
		return
	}

	if err := h.Service.Delete(c.Request.Context(), identity, uint(id)); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}

// ===========================
// 📊 Expense Summary - GET /expenses/summary
// ===========================
func (h *Handler) Summary(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	summary, err := h.Service.GetSummary(identity)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
