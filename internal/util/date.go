package util

import (
	"time"

	"github.com/tasksheet/tasksheet-cli/internal/model"
)

// DateKey formats a timestamp as the calendar-day key used across the app.
func DateKey(t time.Time) string {
	return t.Format(model.DateKeyFormat)
}

// ParseDateKey parses a yyyy-mm-dd key back into a date.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(model.DateKeyFormat, key)
}

// StartOfWeek truncates to the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week started the previous Monday
	}
	return day.AddDate(0, 0, -(weekday - 1))
}

// DaysBetween returns the whole calendar days from a to b (b after a).
func DaysBetween(a, b time.Time) int {
	aDay := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bDay := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bDay.Sub(aDay).Hours() / 24)
}

// IsWithinDateRange checks a date key against optional from/to bounds
// (inclusive, yyyy-mm-dd). Empty bounds do not filter.
func IsWithinDateRange(dateKey, fromDate, toDate string) bool {
	if fromDate == "" && toDate == "" {
		return true
	}

	date, err := ParseDateKey(dateKey)
	if err != nil {
		return false
	}

	if fromDate != "" {
		from, err := ParseDateKey(fromDate)
		if err == nil && date.Before(from) {
			return false
		}
	}
	if toDate != "" {
		to, err := ParseDateKey(toDate)
		if err == nil && date.After(to) {
			return false
		}
	}
	return true
}
