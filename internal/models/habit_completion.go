package models

import "time"

// HabitCompletion is a dated record of whether a habit was performed.
// Duplicate records for the same (habit, date) pair are allowed; the
// streak calculation tolerates them.
type HabitCompletion struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	HabitID     uint64    `gorm:"not null;index" json:"habit_id"`
	CompletedOn time.Time `gorm:"type:date;not null;index" json:"completed_on"`
	Completed   bool      `gorm:"not null" json:"completed"`
}
