package services

import "time"

// LongestStreak returns the length of the longest run of consecutive
// calendar days in dates, which must be sorted ascending. Duplicate dates
// are ignored: they neither extend nor break a run. Runs are always
// measured in calendar days regardless of the habit's frequency.
func LongestStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	current := 1
	longest := 1
	previous := toDate(dates[0])

	for _, d := range dates[1:] {
		day := toDate(d)
		switch daysBetween(previous, day) {
		case 1:
			current++
			if current > longest {
				longest = current
			}
		case 0:
			// Duplicate entry for the same date: no-op.
		default:
			current = 1
		}
		previous = day
	}

	if current > longest {
		longest = current
	}
	return longest
}

// toDate strips the time component, pinning the value to UTC midnight.
func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
