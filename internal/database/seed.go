package database

import (
	"errors"
	"log"
	"time"

	"github.com/selinak/habit-tracker-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates the database with a default user, a set of predefined
// habits, and four weeks of alternating completion records. It is
// idempotent: existing records are left alone.
func Seed(db *gorm.DB) error {
	var user models.User
	err := db.Where("username = ?", "default_user").First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user = models.User{
			Username:     "default_user",
			Email:        "default_user@example.com",
			PasswordHash: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("Default user created with ID: %d", user.ID)
	case err != nil:
		return err
	default:
		log.Printf("Default user already exists with ID: %d", user.ID)
	}

	predefined := []models.Habit{
		{Name: "Read a book", Description: "Read for 30 minutes", Frequency: models.FrequencyDaily},
		{Name: "Exercise", Description: "30 minutes of cardio", Frequency: models.FrequencyDaily},
		{Name: "Learn a new language", Description: "Practice for 1 hour", Frequency: models.FrequencyWeekly},
		{Name: "Write in a journal", Description: "Write 3 pages", Frequency: models.FrequencyDaily},
		{Name: "Clean the house", Description: "Clean for 2 hours", Frequency: models.FrequencyWeekly},
	}

	for i := range predefined {
		habit := predefined[i]
		habit.UserID = user.ID

		var existing models.Habit
		err := db.Where("name = ? AND user_id = ?", habit.Name, user.ID).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := db.Create(&habit).Error; err != nil {
			return err
		}

		// Four weeks of sample history: daily habits get a record every
		// day, weekly habits only on Mondays, alternating completed flags.
		now := time.Now().UTC()
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -28)
		for day := 0; day < 28; day++ {
			date := start.AddDate(0, 0, day)
			if habit.Frequency == models.FrequencyWeekly && date.Weekday() != time.Monday {
				continue
			}
			completion := models.HabitCompletion{
				HabitID:     habit.ID,
				CompletedOn: date,
				Completed:   day%2 == 0,
			}
			if err := db.Create(&completion).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
