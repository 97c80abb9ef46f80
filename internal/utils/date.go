package utils

import (
	"time"

	"github.com/selinak/habit-tracker-api/internal/constants"
)

// ParseDate parses an ISO YYYY-MM-DD string into a UTC midnight time.Time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(constants.DateLayout, s)
}

// FormatDate renders a time as an ISO YYYY-MM-DD string.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateLayout)
}
