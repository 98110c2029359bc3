package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used by transaction dates and debt
// due dates. Comparisons on these fields are date-level, never timestamps.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return t, nil
}

// Midnight truncates t to the start of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
