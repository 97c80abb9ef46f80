package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/selinak/habit-tracker-api/internal/dto"
	apierrors "github.com/selinak/habit-tracker-api/internal/errors"
	"github.com/selinak/habit-tracker-api/internal/middleware"
	"github.com/selinak/habit-tracker-api/internal/models"
	"github.com/selinak/habit-tracker-api/internal/services"
)

// AnalyticsHandler coordinates habit analytics HTTP handlers.
type AnalyticsHandler struct {
	habitService     *services.HabitService
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(habitService *services.HabitService, analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		habitService:     habitService,
		analyticsService: analyticsService,
	}
}

// ListAllHabits returns summaries of every habit the user tracks.
func (h *AnalyticsHandler) ListAllHabits(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	habits, err := h.habitService.ListHabits(userID, nil)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitSummaryDTOs(habits))
}

// ListHabitsByPeriodicity returns the user's habits with the requested
// frequency. Unknown periodicity values are rejected.
func (h *AnalyticsHandler) ListHabitsByPeriodicity(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	periodicity := models.Frequency(c.Param("periodicity"))
	habits, err := h.habitService.ListHabits(userID, &periodicity)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitSummaryDTOs(habits))
}

// LongestStreak returns the longest streak across all of the user's habits.
func (h *AnalyticsHandler) LongestStreak(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	streak, err := h.analyticsService.LongestStreakAcrossHabits(userID)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StreakDTO{LongestStreak: streak})
}

// LongestStreakForHabit returns the longest streak for one habit.
// Ownership is verified by the analytics service; habits owned by other
// users report 404.
func (h *AnalyticsHandler) LongestStreakForHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	habitID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid habit ID")
		return
	}

	streak, err := h.analyticsService.LongestStreakForHabit(userID, habitID)
	if err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, dto.StreakDTO{LongestStreak: streak})
}
