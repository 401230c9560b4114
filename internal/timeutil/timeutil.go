package timeutil

import (
	"iter"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// seasonRolloverMonth is the first month attributed to a new NBA season.
// Offseason months already look ahead to the upcoming season.
const seasonRolloverMonth = time.July

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDayUTC returns midnight UTC of t's UTC calendar day.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DateWindow yields n consecutive UTC calendar dates, starting with start's UTC day.
// The sequence is lazy and can be ranged over any number of times.
func DateWindow(start time.Time, n int) iter.Seq2[int, string] {
	day := StartOfDayUTC(start)
	return func(yield func(int, string) bool) {
		for i := 0; i < n; i++ {
			if !yield(i, FormatDate(day.AddDate(0, 0, i))) {
				return
			}
		}
	}
}

// SeasonFor returns the NBA season (keyed by its starting year) that t belongs to.
func SeasonFor(t time.Time) int {
	u := t.UTC()
	if u.Month() >= seasonRolloverMonth {
		return u.Year()
	}
	return u.Year() - 1
}
