package bhajan

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
// 🎵 Upload Bhajan - POST /bhajans (multipart)
// ===========================
func (h *Handler) Create(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	title := c.PostForm("title")
	lyricsText := c.PostForm("lyrics_text")

	// Each asset is optional; a bhajan can be just a title + typed lyrics.
	var files UploadFiles
	files.Audio, _ = c.FormFile("audio")
	files.Image, _ = c.FormFile("image")
	files.Lyrics, _ = c.FormFile("lyrics")

	b, err := h.Service.Create(c.Request.Context(), identity, title, lyricsText, files)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ===========================
// 📋 My Bhajans - GET /bhajans
// ===========================
func (h *Handler) ListMine(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	bs, err := h.Service.ListMine(identity)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bhajans": bs, "count": len(bs)})
}

// ===========================
// ✏️ Update Bhajan - PUT /bhajans/:bhajanID
// ===========================
func (h *Handler) Update(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	id, err := strconv.Atoi(c.Param("bhajanID"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bhajan ID"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	b, err := h.Service.Update(identity, uint(id), &req)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, b)
}

// ===========================
// 🗑 Delete Bhajan - DELETE /bhajans/:bhajanID
// ===========================
func (h *Handler) Delete(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	id, err := strconv.Atoi(c.Param("bhajanID"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bhajan ID"})
		return
	}

	if err := h.Service.Delete(c.Request.Context(), identity, uint(id)); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "bhajan deleted"})
}
