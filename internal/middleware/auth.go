package middleware

import (
	"net/http"
	"strings"

	"mediavault/internal/auth"
	"mediavault/internal/logger"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// AuthMiddleware validates the bearer token and stores the owner id in
// the gin context. This is the boundary to the authenticated-identity
// collaborator: everything below it receives owner as a plain parameter.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Request = c.Request.WithContext(logger.WithOwnerID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// CurrentUser returns the authenticated owner id from the gin context.
func CurrentUser(c *gin.Context) (string, bool) {
	val, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	userID, ok := val.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
