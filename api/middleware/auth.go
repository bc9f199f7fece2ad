package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"bookswap/services"

	"github.com/gin-gonic/gin"
)

var userService = services.NewUserService()

// AuthMiddleware - аутентификация по Bearer-токену. Заголовок X-User-ID
// принимается только в тестовом режиме gin, в боевом идентичность
// подтверждает только токен.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDHeader := c.GetHeader("X-User-ID")
		if userIDHeader != "" && gin.Mode() == gin.TestMode {
			userID, err := strconv.ParseInt(userIDHeader, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid X-User-ID format"})
				c.Abort()
				return
			}
			c.Set("user_id", userID)
			c.Next()
			return
		}

		// Затем проверяем Authorization Bearer token
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			userID, err := userService.ResolveToken(token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				c.Abort()
				return
			}
			c.Set("user_id", userID)
			c.Next()
			return
		}

		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required: provide X-User-ID header or Authorization Bearer token"})
		c.Abort()
	}
}
