package mandapam

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
// 🎯 Create Mandapam - POST /mandapams (multipart)
// ===========================
func (h *Handler) Create(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req CreateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	// Logo is optional
	logo, _ := c.FormFile("logo")

	m, err := h.Service.Create(c.Request.Context(), identity, &req, logo, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// ===========================
// 🔍 Get Mandapam - GET /mandapams/:id
// ===========================
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mandapam ID"})
		return
	}

	m, err := h.Service.Get(uint(id))
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// ===========================
// 📄 List / Search - GET /mandapams?name=&city=&state=
// ===========================
func (h *Handler) List(c *gin.Context) {
	filter := SearchFilter{
		Name:  c.Query("name"),
		City:  c.Query("city"),
		State: c.Query("state"),
	}

	// No filters: serve the cached directory.
	if filter.Name == "" && filter.City == "" && filter.State == "" {
		out, err := h.Service.List(c.Request.Context())
		if err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
		return
	}

	out, err := h.Service.Search(filter)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, out)
}

// ===========================
// 🔍 My Mandapam - GET /mandapams/mine (admin dashboard)
// ===========================
func (h *Handler) Mine(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	m, err := h.Service.GetByAdmin(identity.UserID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// ===========================
// 🛠 Update Settings - PUT /mandapams/:id (multipart)
// ===========================
func (h *Handler) Update(c *gin.Context) {
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

	var req UpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	logo, _ := c.FormFile("logo")

	m, err := h.Service.Update(c.Request.Context(), identity, uint(id), &req, logo, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}
