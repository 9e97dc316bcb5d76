package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGridCommand(t *testing.T) {
	t.Run("Single week", func(t *testing.T) {
		out, _, err := run(t, "grid", "--weeks", "1", "--today", "2026-10-14",
			"--logged", "2026-10-12,2026-10-13", "--no-color")
		require.NoError(t, err)

		assert.Contains(t, out, "Saturation log 2026-10-11 .. 2026-10-17 (today 2026-10-14)")
		assert.Contains(t, out, " S  M  T  W  R  F  S")
		assert.Contains(t, out, "2026-10-11  .  1  1  1")
		assert.Contains(t, out, "2026-10-14 - Saturation: 19%")
		assert.NotContains(t, out, "Showing")
		assert.NotContains(t, out, "\x1b[")
	})

	t.Run("Long logs collapse", func(t *testing.T) {
		out, _, err := run(t, "grid", "--today", "2026-10-14", "--no-color")
		require.NoError(t, err)

		assert.Contains(t, out, "Showing 8 of 12 weeks")
		assert.NotContains(t, out, "2026-07-26", "oldest week is hidden")
		assert.Contains(t, out, "2026-08-23")
	})

	t.Run("Expanded shows every week", func(t *testing.T) {
		out, _, err := run(t, "grid", "--today", "2026-10-14", "--expanded", "--no-color")
		require.NoError(t, err)

		assert.NotContains(t, out, "Showing")
		assert.Contains(t, out, "2026-07-26")
		rows := 0
		for _, line := range strings.Split(out, "\n") {
			if len(line) > 12 && strings.HasPrefix(line[10:], "  ") && strings.HasPrefix(line, "2026-") {
				rows++
			}
		}
		assert.Equal(t, 12, rows)
	})

	t.Run("Future dates are ignored with a warning", func(t *testing.T) {
		out, errOut, err := run(t, "grid", "--weeks", "1", "--today", "2026-10-14",
			"--logged", "2026-10-16", "--no-color")
		require.NoError(t, err)

		assert.Contains(t, errOut, "2026-10-16 is in the future")
		assert.Contains(t, out, "2026-10-14 - Saturation: 0%")
	})

	t.Run("Invalid input", func(t *testing.T) {
		cases := [][]string{
			{"grid", "--today", "14/10/2026"},
			{"grid", "--weeks", "0"},
			{"grid", "--weeks", "53"},
			{"grid", "--today", "2026-10-14", "--logged", "2025-01-01"},
			{"grid", "--logged", "yesterday"},
			{"grid", "extra-arg"},
		}
		for _, args := range cases {
			_, _, err := run(t, args...)
			assert.Error(t, err, strings.Join(args, " "))
		}
	})
}

func TestStatsCommand(t *testing.T) {
	t.Run("Board", func(t *testing.T) {
		out, _, err := run(t, "stats", "--weeks", "1", "--today", "2026-10-14",
			"--logged", "2026-10-12,2026-10-13")
		require.NoError(t, err)

		assert.Contains(t, out, "Today:                2026-10-14")
		assert.Contains(t, out, "Current saturation:   19%")
		assert.Contains(t, out, "Current streak:       2 days")
		assert.Contains(t, out, "Compliance rate:      50.0% (2 of 4 days)")
		assert.NotContains(t, out, "#")
	})

	t.Run("Duplicate dates count once", func(t *testing.T) {
		out, _, err := run(t, "stats", "--weeks", "1", "--today", "2026-10-14",
			"--logged", "2026-10-13,2026-10-13")
		require.NoError(t, err)

		assert.Contains(t, out, "Current streak:       1 day")
	})

	t.Run("History", func(t *testing.T) {
		out, _, err := run(t, "stats", "--weeks", "1", "--today", "2026-10-14",
			"--logged", "2026-10-11", "--history")
		require.NoError(t, err)

		assert.Contains(t, out, "2026-10-11  10% ##")
		assert.Contains(t, out, "2026-10-14   9% ##")
		assert.NotContains(t, out, "2026-10-15")
	})
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "satlog version dev")
}
