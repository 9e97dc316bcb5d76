package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidDate          = errors.New("invalid date format (must be YYYY-MM-DD)")
	ErrEntryIndexOutOfRange = errors.New("log entry index out of range")
)

const DateLayout = "2006-01-02"

var dayLetters = [7]string{"S", "M", "T", "W", "R", "F", "S"}

// LogEntry is one calendar day of the tracked window.
// Dates are ISO strings so they compare lexicographically.
type LogEntry struct {
	Date   string `json:"date"`
	Logged bool   `json:"logged"`
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// DayNumber returns the day of month of an ISO date, 0 if malformed.
func DayNumber(date string) int {
	t, err := ParseDate(date)
	if err != nil {
		return 0
	}
	return t.Day()
}

// DayLetter returns the single-letter weekday label (R for Thursday).
func DayLetter(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	return dayLetters[t.Weekday()]
}
