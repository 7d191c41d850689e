package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/config"
)

// Identity is the authenticated caller as every handler sees it.
type Identity struct {
	UserID     uint
	Email      string
	FullName   string
	PhotoURL   string
	Role       string // "admin" or "member"
	MandapamID *uint  // set once the user owns or has joined a mandapam
}

// IsAdmin reports whether the caller is the admin of the given mandapam.
// This is the one capability check consumed by every guarded operation.
func (id *Identity) IsAdmin(mandapamID uint) bool {
	return id.Role == RoleAdmin && id.MandapamID != nil && *id.MandapamID == mandapamID
}

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// UserLoader resolves a token's user_id claim into a full identity.
// Implemented by the auth service.
type UserLoader interface {
	IdentityByID(userID uint) (Identity, error)
}

// AuthMiddleware validates the Bearer access token and stores the caller's
// identity on the request context.
func AuthMiddleware(cfg *config.Config, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTAccessSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id missing in token"})
			return
		}

		identity, err := users.IdentityByID(uint(userIDFloat))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set("identity", identity)
		c.Set("user_id", identity.UserID)
		c.Next()
	}
}

// CurrentIdentity extracts the identity the auth middleware stored.
// The bool is false when the route was not behind AuthMiddleware.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	raw, exists := c.Get("identity")
	if !exists {
		return Identity{}, false
	}
	identity, ok := raw.(Identity)
	return identity, ok
}

// GetIPFromContext returns the caller IP for audit logging.
func GetIPFromContext(c *gin.Context) string {
	return c.ClientIP()
}
