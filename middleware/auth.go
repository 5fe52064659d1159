package middleware

import (
	"net/http"
	"strings"

	"nekokin/models"
	"nekokin/utils"

	"github.com/gin-gonic/gin"
)

const (
	// ContextCustomerID is the gin context key carrying the caller's id.
	ContextCustomerID = "customerID"
	// ContextRole is the gin context key carrying the caller's role.
	ContextRole = "role"
)

// JWTAuthMiddleware validates the bearer token, checks the session has not
// been revoked and places the caller's identity in the gin context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		customerID, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// A token is only live while its session key is still in the auth
		// cache; logout removes the key.
		cache := utils.GetAuthCacheClient()
		key := utils.AuthCachePrefix + utils.HashToken(tokenString)
		if _, err := cache.Get(c.Request.Context(), key).Result(); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}

		c.Set(ContextCustomerID, customerID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// AdminOnlyMiddleware rejects callers whose token does not carry the admin
// role. It must run after JWTAuthMiddleware.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Administrator access required"})
			return
		}
		c.Next()
	}
}
