package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RequireAdmin guards routes under /mandapams/:id that only the owning
// admin may call. The route param names the mandapam; the identity carries
// the caller's role and mandapam.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		mandapamID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil || mandapamID == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid mandapam ID"})
			return
		}

		if !identity.IsAdmin(uint(mandapamID)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Next()
	}
}
