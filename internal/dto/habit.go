package dto

import (
	"time"

	"github.com/selinak/habit-tracker-api/internal/models"
	"github.com/selinak/habit-tracker-api/internal/utils"
)

// HabitDTO represents a habit in API responses
type HabitDTO struct {
	ID           uint64           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Frequency    models.Frequency `json:"frequency"`
	CreationDate time.Time        `json:"creation_date"`
}

// HabitSummaryDTO represents a habit in analytics listings
type HabitSummaryDTO struct {
	ID          uint64           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Frequency   models.Frequency `json:"frequency"`
}

// CompletionDTO represents a completion record in API responses.
// Dates travel as ISO YYYY-MM-DD strings.
type CompletionDTO struct {
	HabitID     uint64 `json:"habit_id"`
	CompletedOn string `json:"completed_on"`
	Completed   bool   `json:"completed"`
}

// StreakDTO carries a longest-streak result
type StreakDTO struct {
	LongestStreak int `json:"longest_streak"`
}

// ToHabitDTO converts a Habit model to HabitDTO
func ToHabitDTO(habit models.Habit) HabitDTO {
	return HabitDTO{
		ID:           habit.ID,
		Name:         habit.Name,
		Description:  habit.Description,
		Frequency:    habit.Frequency,
		CreationDate: habit.CreatedAt,
	}
}

// ToHabitDTOs converts a slice of habits
func ToHabitDTOs(habits []models.Habit) []HabitDTO {
	dtos := make([]HabitDTO, len(habits))
	for i, habit := range habits {
		dtos[i] = ToHabitDTO(habit)
	}
	return dtos
}

// ToHabitSummaryDTO converts a Habit model to HabitSummaryDTO
func ToHabitSummaryDTO(habit models.Habit) HabitSummaryDTO {
	return HabitSummaryDTO{
		ID:          habit.ID,
		Name:        habit.Name,
		Description: habit.Description,
		Frequency:   habit.Frequency,
	}
}

// ToHabitSummaryDTOs converts a slice of habits
func ToHabitSummaryDTOs(habits []models.Habit) []HabitSummaryDTO {
	dtos := make([]HabitSummaryDTO, len(habits))
	for i, habit := range habits {
		dtos[i] = ToHabitSummaryDTO(habit)
	}
	return dtos
}

// ToCompletionDTO converts a HabitCompletion model to CompletionDTO
func ToCompletionDTO(completion models.HabitCompletion) CompletionDTO {
	return CompletionDTO{
		HabitID:     completion.HabitID,
		CompletedOn: utils.FormatDate(completion.CompletedOn),
		Completed:   completion.Completed,
	}
}

// ToCompletionDTOs converts a slice of completions
func ToCompletionDTOs(completions []models.HabitCompletion) []CompletionDTO {
	dtos := make([]CompletionDTO, len(completions))
	for i, completion := range completions {
		dtos[i] = ToCompletionDTO(completion)
	}
	return dtos
}
