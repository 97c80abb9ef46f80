package repository

import (
	"github.com/selinak/habit-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormCompletionRepository is a GORM implementation of CompletionRepository
type GormCompletionRepository struct {
	db *gorm.DB
}

// NewCompletionRepository creates a new CompletionRepository
func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &GormCompletionRepository{db: db}
}

// Create appends a completion record. There is no uniqueness constraint
// on (habit_id, completed_on); duplicates are stored as-is.
func (r *GormCompletionRepository) Create(completion *models.HabitCompletion) error {
	return r.db.Create(completion).Error
}

// ListCompletedOrderedByDate returns a habit's true completions sorted
// ascending by date, as the streak calculation requires.
func (r *GormCompletionRepository) ListCompletedOrderedByDate(habitID uint64) ([]models.HabitCompletion, error) {
	var completions []models.HabitCompletion
	if err := r.db.
		Where("habit_id = ? AND completed = ?", habitID, true).
		Order("completed_on ASC").
		Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

// ListAllForUser returns every completion belonging to the user's habits,
// whether completed or not.
func (r *GormCompletionRepository) ListAllForUser(userID uint64) ([]models.HabitCompletion, error) {
	var completions []models.HabitCompletion
	if err := r.db.
		Joins("JOIN habits ON habits.id = habit_completions.habit_id").
		Where("habits.user_id = ? AND habits.deleted_at IS NULL", userID).
		Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}
