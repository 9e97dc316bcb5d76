package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/comitanigiacomo/kanso-saturation/internal/core/domain"
)

// logFlags are the inputs shared by every command that builds a log.
type logFlags struct {
	weeks   int
	today   string
	logged  []string
	noColor bool
}

func (f *logFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.weeks, "weeks", "w", domain.DefaultWeeks, "Number of weeks to track (1-52)")
	cmd.Flags().StringVar(&f.today, "today", "", "Override today's date, YYYY-MM-DD (default: local date)")
	cmd.Flags().StringSliceVarP(&f.logged, "logged", "l", nil, "Logged dates, YYYY-MM-DD, comma separated")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable ANSI colours")
}

// buildSession creates a fresh log and replays the logged dates onto it.
// Dates after today are reported on errOut and skipped.
func (f *logFlags) buildSession(errOut io.Writer) (*domain.Session, error) {
	today := time.Now()
	if f.today != "" {
		t, err := domain.ParseDate(f.today)
		if err != nil {
			return nil, fmt.Errorf("--today: %w", err)
		}
		today = t
	}

	session, err := domain.NewSession(today, f.weeks)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(f.logged))
	for _, date := range f.logged {
		if seen[date] {
			continue
		}
		seen[date] = true

		changed, err := session.ToggleDate(date)
		if err != nil {
			return nil, fmt.Errorf("--logged %s: %w", date, err)
		}
		if !changed {
			fmt.Fprintf(errOut, "warning: %s is in the future, ignored\n", date)
		}
	}

	return session, nil
}

// colorEnabled reports whether ANSI colours should be written to out.
func (f *logFlags) colorEnabled(out io.Writer) bool {
	if f.noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := out.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
