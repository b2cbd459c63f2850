package middleware

import (
	"hackmate-backend/utils"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthRequired resolves the caller from the Authorization header and stores
// the user ID in the context, or aborts with 401.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		userID, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
