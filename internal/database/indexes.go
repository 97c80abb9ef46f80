package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database.
// The existence check queries pg_indexes, so this runs on Postgres only.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Habit indexes for owner-scoped listing and frequency filters
		{"habits", "idx_habits_user_id", "user_id"},
		{"habits", "idx_habits_frequency", "frequency"},
		{"habits", "idx_habits_created_at", "created_at"},

		// Completion indexes for the ordered streak query
		{"habit_completions", "idx_completions_habit_id", "habit_id"},
		{"habit_completions", "idx_completions_habit_date", "habit_id, completed_on"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
