package domain

import (
	"errors"
	"time"
)

var ErrInvalidWeeks = errors.New("invalid number of weeks (must be 1-52)")

const (
	DefaultWeeks = 12
	CompactWeeks = 8
	MaxWeeks     = 52
	DaysPerWeek  = 7
)

func ValidateWeeks(weeks int) error {
	if weeks < 1 || weeks > MaxWeeks {
		return ErrInvalidWeeks
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ThisSunday returns midnight of the Sunday starting the week that contains today.
func ThisSunday(today time.Time) time.Time {
	day := startOfDay(today)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// GenerateLog returns weeks*7 contiguous unlogged entries, Sunday to Saturday,
// whose last week is the one containing today.
func GenerateLog(today time.Time, weeks int) []LogEntry {
	if weeks < 1 {
		return nil
	}

	start := ThisSunday(today).AddDate(0, 0, -DaysPerWeek*(weeks-1))

	entries := make([]LogEntry, 0, weeks*DaysPerWeek)
	for i := 0; i < weeks*DaysPerWeek; i++ {
		entries = append(entries, LogEntry{
			Date:   FormatDate(start.AddDate(0, 0, i)),
			Logged: false,
		})
	}
	return entries
}

// SplitWeeks chunks a log into rows of seven days. The rows share the
// backing array of entries.
func SplitWeeks(entries []LogEntry) [][]LogEntry {
	weeks := make([][]LogEntry, 0, (len(entries)+DaysPerWeek-1)/DaysPerWeek)
	for i := 0; i < len(entries); i += DaysPerWeek {
		end := i + DaysPerWeek
		if end > len(entries) {
			end = len(entries)
		}
		weeks = append(weeks, entries[i:end])
	}
	return weeks
}
