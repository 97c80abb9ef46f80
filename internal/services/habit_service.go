package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/selinak/habit-tracker-api/internal/models"
	"github.com/selinak/habit-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrNameRequired       = errors.New("name is required")
	ErrFrequencyRequired  = errors.New("frequency is required")
	ErrInvalidFrequency   = errors.New("frequency must be Daily or Weekly")
	ErrNameEmpty          = errors.New("name cannot be empty")
	ErrCompletionRequired = errors.New("completed date and status are required")
)

// HabitService handles habit and completion business logic.
type HabitService struct {
	habitRepo      repository.HabitRepository
	completionRepo repository.CompletionRepository
}

// NewHabitService creates a new HabitService.
func NewHabitService(habitRepo repository.HabitRepository, completionRepo repository.CompletionRepository) *HabitService {
	return &HabitService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
	}
}

// CreateHabitInput represents input for creating a habit.
type CreateHabitInput struct {
	Name        string
	Description string
	Frequency   models.Frequency
	UserID      uint64
}

// UpdateHabitInput represents input for a partial habit update.
type UpdateHabitInput struct {
	Name        *string
	Description *string
	Frequency   *models.Frequency
}

// CreateHabit creates a new habit for a user.
func (s *HabitService) CreateHabit(input CreateHabitInput) (*models.Habit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if input.Frequency == "" {
		return nil, ErrFrequencyRequired
	}
	if !models.ValidFrequency(input.Frequency) {
		return nil, ErrInvalidFrequency
	}

	habit := &models.Habit{
		Name:        name,
		Description: input.Description,
		Frequency:   input.Frequency,
		UserID:      input.UserID,
	}

	if err := s.habitRepo.Create(habit); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return habit, nil
}

// GetHabit returns a habit scoped to its owner.
func (s *HabitService) GetHabit(habitID, userID uint64) (*models.Habit, error) {
	habit, err := s.habitRepo.FindByIDAndUser(habitID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}
	return habit, nil
}

// ListHabits returns a user's habits, optionally filtered by frequency.
func (s *HabitService) ListHabits(userID uint64, frequency *models.Frequency) ([]models.Habit, error) {
	if frequency != nil && !models.ValidFrequency(*frequency) {
		return nil, ErrInvalidFrequency
	}

	habits, err := s.habitRepo.ListByUser(userID, frequency)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	return habits, nil
}

// UpdateHabit updates only the supplied fields of an owned habit.
func (s *HabitService) UpdateHabit(habitID, userID uint64, input UpdateHabitInput) (*models.Habit, error) {
	habit, err := s.GetHabit(habitID, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameEmpty
		}
		habit.Name = name
	}
	if input.Description != nil {
		habit.Description = *input.Description
	}
	if input.Frequency != nil {
		if !models.ValidFrequency(*input.Frequency) {
			return nil, ErrInvalidFrequency
		}
		habit.Frequency = *input.Frequency
	}

	if err := s.habitRepo.Update(habit); err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}

	return habit, nil
}

// DeleteHabit removes an owned habit together with its completions.
func (s *HabitService) DeleteHabit(habitID, userID uint64) error {
	if _, err := s.GetHabit(habitID, userID); err != nil {
		return err
	}

	if err := s.habitRepo.Delete(habitID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	return nil
}

// RecordCompletionInput represents input for recording a completion.
type RecordCompletionInput struct {
	HabitID     uint64
	UserID      uint64
	CompletedOn time.Time
	Completed   bool
}

// RecordCompletion appends a completion record for an owned habit.
// Duplicate dates are accepted; the streak calculation tolerates them.
func (s *HabitService) RecordCompletion(input RecordCompletionInput) (*models.HabitCompletion, error) {
	if _, err := s.GetHabit(input.HabitID, input.UserID); err != nil {
		return nil, err
	}

	completion := &models.HabitCompletion{
		HabitID:     input.HabitID,
		CompletedOn: input.CompletedOn,
		Completed:   input.Completed,
	}

	if err := s.completionRepo.Create(completion); err != nil {
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}

	return completion, nil
}

// ListCompletions returns every completion across all of a user's habits.
func (s *HabitService) ListCompletions(userID uint64) ([]models.HabitCompletion, error) {
	completions, err := s.completionRepo.ListAllForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	return completions, nil
}
