package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThisSunday(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		want  string
	}{
		{"Sunday maps to itself", time.Date(2026, 10, 11, 15, 0, 0, 0, time.UTC), "2026-10-11"},
		{"Saturday maps to previous Sunday", time.Date(2026, 10, 17, 23, 59, 0, 0, time.UTC), "2026-10-11"},
		{"Wednesday across a month boundary", time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC), "2026-06-28"},
		{"Year boundary", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "2026-12-27"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(ThisSunday(tt.today)))
		})
	}
}

func TestGenerateLog(t *testing.T) {
	for _, weeks := range []int{1, 12, 24} {
		for offset := 0; offset < 7; offset++ {
			today := time.Date(2026, 10, 11+offset, 9, 30, 0, 0, time.UTC)

			log := GenerateLog(today, weeks)

			require.Len(t, log, weeks*7)

			first, err := ParseDate(log[0].Date)
			require.NoError(t, err)
			assert.Equal(t, time.Sunday, first.Weekday())

			last, err := ParseDate(log[len(log)-1].Date)
			require.NoError(t, err)
			assert.Equal(t, time.Saturday, last.Weekday())

			todayDate, _ := ParseDate(FormatDate(today))
			gap := last.Sub(todayDate).Hours() / 24
			assert.GreaterOrEqual(t, gap, 0.0)
			assert.LessOrEqual(t, gap, 6.0)

			for i := 1; i < len(log); i++ {
				prev, _ := ParseDate(log[i-1].Date)
				cur, _ := ParseDate(log[i].Date)
				assert.Equal(t, prev.AddDate(0, 0, 1), cur, "dates must advance one day at a time")
				assert.False(t, log[i].Logged)
			}
		}
	}
}

func TestGenerateLog_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	today := time.Date(2026, 10, 27, 12, 0, 0, 0, loc)
	log := GenerateLog(today, 2)

	require.Len(t, log, 14)
	assert.Equal(t, "2026-10-18", log[0].Date)
	assert.Equal(t, "2026-10-25", log[7].Date)
	assert.Equal(t, "2026-10-31", log[13].Date)
}

func TestGenerateLog_NonPositiveWeeks(t *testing.T) {
	assert.Empty(t, GenerateLog(time.Now(), 0))
	assert.Empty(t, GenerateLog(time.Now(), -3))
}

func TestSplitWeeks(t *testing.T) {
	log := GenerateLog(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), 3)

	weeks := SplitWeeks(log)

	require.Len(t, weeks, 3)
	for _, w := range weeks {
		assert.Len(t, w, 7)
		assert.Equal(t, "S", DayLetter(w[0].Date))
	}
	assert.Equal(t, log[7].Date, weeks[1][0].Date)
}

func TestValidateWeeks(t *testing.T) {
	assert.NoError(t, ValidateWeeks(1))
	assert.NoError(t, ValidateWeeks(DefaultWeeks))
	assert.NoError(t, ValidateWeeks(MaxWeeks))
	assert.ErrorIs(t, ValidateWeeks(0), ErrInvalidWeeks)
	assert.ErrorIs(t, ValidateWeeks(MaxWeeks+1), ErrInvalidWeeks)
}

func TestDayLabels(t *testing.T) {
	assert.Equal(t, 15, DayNumber("2026-10-15"))
	assert.Equal(t, "R", DayLetter("2026-10-15"))
	assert.Equal(t, "S", DayLetter("2026-10-17"))
	assert.Equal(t, 0, DayNumber("not-a-date"))
	assert.Equal(t, "", DayLetter("2026-13-01"))
}
