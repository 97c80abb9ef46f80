package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/selinak/habit-tracker-api/internal/constants"
	apierrors "github.com/selinak/habit-tracker-api/internal/errors"
	"github.com/selinak/habit-tracker-api/internal/repository"
)

// RequireHabitAccess loads the habit named by the :id route parameter,
// scoped to the authenticated user, and stores it in the context.
// Habits owned by other users report 404 rather than 403 so that habit
// IDs never leak across owners.
func RequireHabitAccess(habitRepo repository.HabitRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		habitID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid habit ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		habit, err := habitRepo.FindByIDAndUser(habitID, userID)
		if err != nil {
			apierrors.NotFound(c, "Habit not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyHabit, *habit)
		c.Next()
	}
}
