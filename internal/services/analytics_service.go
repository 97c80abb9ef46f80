package services

import (
	"fmt"
	"time"

	"github.com/selinak/habit-tracker-api/internal/repository"
)

// AnalyticsService answers streak questions by combining the habit store,
// the completion store and the streak calculation. It holds no state of
// its own and is safe for concurrent use.
type AnalyticsService struct {
	habitRepo      repository.HabitRepository
	completionRepo repository.CompletionRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(habitRepo repository.HabitRepository, completionRepo repository.CompletionRepository) *AnalyticsService {
	return &AnalyticsService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
	}
}

// LongestStreakForHabit returns the longest consecutive-day completion
// streak for one habit. The habit must belong to the user; a habit owned
// by someone else reports ErrHabitNotFound.
func (s *AnalyticsService) LongestStreakForHabit(userID, habitID uint64) (int, error) {
	if _, err := s.habitRepo.FindByIDAndUser(habitID, userID); err != nil {
		return 0, ErrHabitNotFound
	}

	return s.streakForHabit(habitID)
}

// LongestStreakAcrossHabits returns the maximum streak over all of the
// user's habits, or 0 when the user has no habits or no completions.
func (s *AnalyticsService) LongestStreakAcrossHabits(userID uint64) (int, error) {
	habits, err := s.habitRepo.ListByUser(userID, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to list habits: %w", err)
	}

	longest := 0
	for _, habit := range habits {
		streak, err := s.streakForHabit(habit.ID)
		if err != nil {
			return 0, err
		}
		if streak > longest {
			longest = streak
		}
	}

	return longest, nil
}

func (s *AnalyticsService) streakForHabit(habitID uint64) (int, error) {
	completions, err := s.completionRepo.ListCompletedOrderedByDate(habitID)
	if err != nil {
		return 0, fmt.Errorf("failed to list completions: %w", err)
	}

	dates := make([]time.Time, len(completions))
	for i, c := range completions {
		dates[i] = c.CompletedOn
	}

	return LongestStreak(dates), nil
}
