package gallery

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
// 📸 Upload Photo - POST /mandapams/:id/gallery (multipart)
// ===========================
func (h *Handler) Upload(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	mid, ok := pathUint(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	img, err := h.Service.Upload(c.Request.Context(), identity, mid, file, c.PostForm("caption"), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, img)
}

// ===========================
// 🖼 List Gallery - GET /mandapams/:id/gallery
// ===========================
func (h *Handler) List(c *gin.Context) {
	mid, ok := pathUint(c, "id")
	if !ok {
		return
	}

	// Viewer is optional: anonymous visitors still see the gallery, just
	// without a liked_by_me flag.
	var viewerID uint
	if identity, ok := middleware.CurrentIdentity(c); ok {
		viewerID = identity.UserID
	}

	views, err := h.Service.List(mid, viewerID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": views, "count": len(views)})
}

// ===========================
// ❤️ Toggle Like - POST /mandapams/:id/gallery/:imageID/like
// ===========================
func (h *Handler) ToggleLike(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	imageID, ok := pathUint(c, "imageID")
	if !ok {
		return
	}

	liked, count, err := h.Service.ToggleLike(identity, imageID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "like_count": count})
}

// ===========================
// 💬 Add Comment - POST /mandapams/:id/gallery/:imageID/comments
// ===========================
func (h *Handler) AddComment(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	imageID, ok := pathUint(c, "imageID")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	cm, err := h.Service.AddComment(identity, imageID, &req)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, cm)
}

// ===========================
// 🗑 Delete Comment - DELETE /mandapams/:id/gallery/comments/:commentID
// ===========================
func (h *Handler) DeleteComment(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	commentID, ok := pathUint(c, "commentID")
	if !ok {
		return
	}

	if err := h.Service.DeleteComment(identity, commentID); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// ===========================
// 🗑 Delete Image - DELETE /mandapams/:id/gallery/:imageID
// ===========================
func (h *Handler) DeleteImage(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	imageID, ok := pathUint(c, "imageID")
	if !ok {
		return
	}

	if err := h.Service.DeleteImage(c.Request.Context(), identity, imageID, middleware.GetIPFromContext(c)); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
}
