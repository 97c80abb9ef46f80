package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selinak/habit-tracker-api/internal/constants"
	"github.com/selinak/habit-tracker-api/internal/dto"
	apierrors "github.com/selinak/habit-tracker-api/internal/errors"
	"github.com/selinak/habit-tracker-api/internal/middleware"
	"github.com/selinak/habit-tracker-api/internal/models"
	"github.com/selinak/habit-tracker-api/internal/services"
	"github.com/selinak/habit-tracker-api/internal/utils"
)

// HabitHandler coordinates habit and completion HTTP handlers.
type HabitHandler struct {
	habitService *services.HabitService
}

// NewHabitHandler creates a new HabitHandler.
func NewHabitHandler(habitService *services.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

// CreateHabit creates a new habit for the current user.
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateHabitRequest struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Frequency   string `json:"frequency"`
	}

	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := h.habitService.CreateHabit(services.CreateHabitInput{
		Name:        req.Name,
		Description: req.Description,
		Frequency:   models.Frequency(req.Frequency),
		UserID:      userID,
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Habit created successfully",
		"id":      habit.ID,
	})
}

// ListHabits returns all habits belonging to the current user.
func (h *HabitHandler) ListHabits(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.ToHabitDTOs(habits))
}

// UpdateHabit updates only the fields supplied in the request body.
// The habit is loaded and owner-checked by RequireHabitAccess.
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	habit, ok := habitFromContext(c)
	if !ok {
		return
	}

	type UpdateHabitRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Frequency   *string `json:"frequency"`
	}

	var req UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateHabitInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Frequency != nil {
		freq := models.Frequency(*req.Frequency)
		input.Frequency = &freq
	}

	if _, err := h.habitService.UpdateHabit(habit.ID, habit.UserID, input); err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Habit updated successfully",
	})
}

// DeleteHabit removes a habit and all of its completions.
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	habit, ok := habitFromContext(c)
	if !ok {
		return
	}

	if err := h.habitService.DeleteHabit(habit.ID, habit.UserID); err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Habit deleted successfully",
	})
}

// RecordCompletion stores a dated completion record for a habit.
func (h *HabitHandler) RecordCompletion(c *gin.Context) {
	habit, ok := habitFromContext(c)
	if !ok {
		return
	}

	type RecordCompletionRequest struct {
		CompletedOn string `json:"completed_on" binding:"required"`
		Completed   *bool  `json:"completed" binding:"required"`
	}

	var req RecordCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Completed date and status are required")
		return
	}

	completedOn, err := utils.ParseDate(req.CompletedOn)
	if err != nil {
		apierrors.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	_, err = h.habitService.RecordCompletion(services.RecordCompletionInput{
		HabitID:     habit.ID,
		UserID:      habit.UserID,
		CompletedOn: completedOn,
		Completed:   *req.Completed,
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Completion recorded successfully",
	})
}

// ListCompletions returns every completion across the user's habits.
func (h *HabitHandler) ListCompletions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	completions, err := h.habitService.ListCompletions(userID)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompletionDTOs(completions))
}

// habitFromContext reads the habit stored by RequireHabitAccess.
func habitFromContext(c *gin.Context) (models.Habit, bool) {
	value, exists := c.Get(constants.ContextKeyHabit)
	if !exists {
		apierrors.InternalError(c, "Habit not found in context")
		return models.Habit{}, false
	}

	habit, ok := value.(models.Habit)
	if !ok {
		apierrors.InternalError(c, "Invalid habit data")
		return models.Habit{}, false
	}

	return habit, true
}

func respondHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHabitNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrNameEmpty),
		errors.Is(err, services.ErrFrequencyRequired),
		errors.Is(err, services.ErrInvalidFrequency),
		errors.Is(err, services.ErrCompletionRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
