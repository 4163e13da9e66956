package middleware

import (
	"net/http"

	"coursehub/database"
	"coursehub/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequireVerified gates payment routes: only accounts with a confirmed
// email may move money.
func RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var user users.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "User not found",
			})
			return
		}

		if !user.IsVerified {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Please verify your email first",
			})
			return
		}

		c.Next()
	}
}
