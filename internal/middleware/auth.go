package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/selinak/habit-tracker-api/internal/constants"
	apierrors "github.com/selinak/habit-tracker-api/internal/errors"
	"github.com/selinak/habit-tracker-api/internal/services"
)

// RequireAuth verifies the bearer token on the Authorization header and
// stores the authenticated user ID in the request context.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "Missing bearer token")
			c.Abort()
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	userID, ok := value.(uint64)
	return userID, ok
}
