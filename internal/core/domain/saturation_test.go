package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(start string, logged ...bool) []LogEntry {
	t, _ := ParseDate(start)
	out := make([]LogEntry, len(logged))
	for i, l := range logged {
		out[i] = LogEntry{Date: FormatDate(t.AddDate(0, 0, i)), Logged: l}
	}
	return out
}

func TestComputeSaturations(t *testing.T) {
	t.Run("Logged, logged, missed", func(t *testing.T) {
		log := entries("2026-10-01", true, true, false)

		got := ComputeSaturations(log, "2026-10-03")

		require.Len(t, got, 3)
		assert.InDelta(t, 0.1, got[0], 1e-9)
		assert.InDelta(t, 0.19, got[1], 1e-9)
		assert.InDelta(t, 0.1862, got[2], 1e-9)
	})

	t.Run("First entry missed starts at zero", func(t *testing.T) {
		got := ComputeSaturations(entries("2026-10-01", false, true), "2026-10-02")

		assert.Equal(t, 0.0, got[0])
		assert.InDelta(t, 0.1, got[1], 1e-9)
	})

	t.Run("Entries after cutoff are zero even when logged", func(t *testing.T) {
		got := ComputeSaturations(entries("2026-10-01", true, true, true, true), "2026-10-02")

		assert.InDelta(t, 0.19, got[1], 1e-9)
		assert.Equal(t, 0.0, got[2])
		assert.Equal(t, 0.0, got[3])
	})

	t.Run("Does not mutate input", func(t *testing.T) {
		log := entries("2026-10-01", true, false, true)
		before := append([]LogEntry(nil), log...)

		ComputeSaturations(log, "2026-10-03")

		assert.Equal(t, before, log)
	})

	t.Run("Empty log", func(t *testing.T) {
		assert.Empty(t, ComputeSaturations(nil, "2026-10-01"))
	})
}

func TestComputeSaturations_Monotonic(t *testing.T) {
	logged := make([]bool, 0, 120)
	for i := 0; i < 60; i++ {
		logged = append(logged, true)
	}
	for i := 0; i < 60; i++ {
		logged = append(logged, false)
	}
	log := entries("2026-01-01", logged...)

	got := ComputeSaturations(log, "2026-12-31")

	for i := 1; i < 60; i++ {
		assert.GreaterOrEqual(t, got[i], got[i-1])
		assert.LessOrEqual(t, got[i], 1.0)
	}
	for i := 60; i < 120; i++ {
		assert.LessOrEqual(t, got[i], got[i-1])
		assert.GreaterOrEqual(t, got[i], 0.0)
	}
}

func TestKineticModel_DaysToReach(t *testing.T) {
	m := DefaultModel

	assert.Equal(t, 0, m.DaysToReach(0.95, SaturatedThreshold))
	assert.Equal(t, 1, m.DaysToReach(0, 0.1))
	assert.Equal(t, 2, m.DaysToReach(0, 0.15))
	// 1 - 0.9^n >= 0.9 first holds at n = 22.
	assert.Equal(t, 22, m.DaysToReach(0, SaturatedThreshold))
	assert.Equal(t, -1, m.DaysToReach(0, 1.5))
	assert.Equal(t, -1, KineticModel{Uptake: 0, Decay: 0.02}.DaysToReach(0, 0.5))
}
