package repository

import (
	"github.com/selinak/habit-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormHabitRepository is a GORM implementation of HabitRepository
type GormHabitRepository struct {
	db *gorm.DB
}

// NewHabitRepository creates a new HabitRepository
func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &GormHabitRepository{db: db}
}

// Create creates a new habit
func (r *GormHabitRepository) Create(habit *models.Habit) error {
	return r.db.Create(habit).Error
}

// FindByIDAndUser finds a habit by ID, scoped to its owner.
// A habit owned by another user yields gorm.ErrRecordNotFound.
func (r *GormHabitRepository) FindByIDAndUser(id, userID uint64) (*models.Habit, error) {
	var habit models.Habit
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&habit).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

// Update updates a habit
func (r *GormHabitRepository) Update(habit *models.Habit) error {
	return r.db.Save(habit).Error
}

// Delete removes a habit and all of its completions in a transaction,
// so no orphan completions can persist.
func (r *GormHabitRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", id).Delete(&models.HabitCompletion{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Habit{}, id).Error
	})
}

// ListByUser lists a user's habits, optionally filtered by frequency
func (r *GormHabitRepository) ListByUser(userID uint64, frequency *models.Frequency) ([]models.Habit, error) {
	var habits []models.Habit

	query := r.db.Where("user_id = ?", userID)
	if frequency != nil {
		query = query.Where("frequency = ?", *frequency)
	}

	if err := query.Order("created_at ASC").Find(&habits).Error; err != nil {
		return nil, err
	}

	return habits, nil
}
