package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tramex/internal/models"
	"tramex/internal/roles"
)

// RequirePermission allows the request through only when the caller's role
// grants the given permission. Must run after AuthMiddleware.
func RequirePermission(check func(roles.Permissions) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		role, ok := roleVal.(models.Role)
		if !ok || !check(roles.For(role)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
			c.Abort()
			return
		}
		c.Next()
	}
}
