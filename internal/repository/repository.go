package repository

import (
	"github.com/selinak/habit-tracker-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// HabitRepository defines the interface for habit data access.
// All reads and writes are scoped to the owning user; a habit belonging
// to a different user behaves exactly like a missing one.
type HabitRepository interface {
	// Create creates a new habit
	Create(habit *models.Habit) error

	// FindByIDAndUser finds a habit by ID, scoped to its owner
	FindByIDAndUser(id, userID uint64) (*models.Habit, error)

	// Update updates a habit
	Update(habit *models.Habit) error

	// Delete removes a habit and all of its completions in one transaction
	Delete(id uint64) error

	// ListByUser lists a user's habits, optionally filtered by frequency
	ListByUser(userID uint64, frequency *models.Frequency) ([]models.Habit, error)
}

// CompletionRepository defines the interface for completion data access
type CompletionRepository interface {
	// Create appends a completion record. Date duplicates are permitted.
	Create(completion *models.HabitCompletion) error

	// ListCompletedOrderedByDate returns a habit's completions with
	// completed = true, sorted ascending by completion date.
	ListCompletedOrderedByDate(habitID uint64) ([]models.HabitCompletion, error)

	// ListAllForUser returns every completion belonging to the user's
	// habits, completed or not, in no particular order.
	ListAllForUser(userID uint64) ([]models.HabitCompletion, error)
}
