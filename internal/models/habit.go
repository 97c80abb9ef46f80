package models

import (
	"time"

	"gorm.io/gorm"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "Daily"
	FrequencyWeekly Frequency = "Weekly"
)

// ValidFrequency reports whether f is one of the supported recurrence tags.
func ValidFrequency(f Frequency) bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

type Habit struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Frequency   Frequency      `gorm:"type:varchar(20);not null" json:"frequency"`
	UserID      uint64         `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
