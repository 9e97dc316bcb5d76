package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/comitanigiacomo/kanso-saturation/internal/core/domain"
)

const historyBarWidth = 20

// ansiBackground maps the grid colour classes onto 256-colour palette codes.
var ansiBackground = map[string]int{
	domain.FutureClass: 255,
	"bg-gray-200":      252,
	"bg-green-300":     114,
	"bg-green-400":     71,
	"bg-green-500":     34,
	"bg-green-600":     28,
	"bg-green-700":     22,
}

func cellGlyph(cell domain.DayCell, color bool) string {
	if color {
		code, ok := ansiBackground[cell.ColorClass]
		if !ok {
			code = ansiBackground["bg-gray-200"]
		}
		return fmt.Sprintf("\x1b[48;5;%dm  \x1b[0m", code)
	}

	switch {
	case cell.Future:
		return "  "
	case cell.Band == domain.BandNone:
		return " ."
	default:
		return fmt.Sprintf(" %d", cell.Band)
	}
}

func renderGrid(w io.Writer, view domain.GridView, color bool) {
	if len(view.Weeks) == 0 {
		fmt.Fprintln(w, "empty log")
		return
	}

	first := view.Weeks[0]
	last := view.Weeks[len(view.Weeks)-1]
	fmt.Fprintf(w, "Saturation log %s .. %s (today %s)\n\n",
		first.StartDate, last.Days[len(last.Days)-1].Date, view.Cutoff)

	header := make([]string, 0, len(first.Days))
	for _, d := range first.Days {
		header = append(header, fmt.Sprintf("%2s", d.DayLetter))
	}
	fmt.Fprintf(w, "%-10s %s\n", "", strings.Join(header, " "))

	var current *domain.DayCell
	for _, week := range view.Weeks {
		cells := make([]string, 0, len(week.Days))
		for i, d := range week.Days {
			cells = append(cells, cellGlyph(d, color))
			if !d.Future {
				current = &week.Days[i]
			}
		}
		fmt.Fprintf(w, "%-10s %s\n", week.StartDate, strings.Join(cells, " "))
	}

	fmt.Fprintln(w)
	if !view.Expanded && len(view.Weeks) < view.TotalWeeks {
		fmt.Fprintf(w, "Showing %d of %d weeks (use --expanded to show all)\n", len(view.Weeks), view.TotalWeeks)
	}
	if current != nil {
		fmt.Fprintf(w, "%s\n", current.Title)
	}
}

func renderSummary(w io.Writer, s domain.Summary, history bool) {
	fmt.Fprintf(w, "%-22s%s\n", "Today:", s.Cutoff)
	fmt.Fprintf(w, "%-22s%d%%\n", "Current saturation:", domain.Percent(s.CurrentSaturation))
	fmt.Fprintf(w, "%-22s%s\n", "Current streak:", pluralDays(s.Streak))
	fmt.Fprintf(w, "%-22s%.1f%% (%d of %s)\n", "Compliance rate:", s.ComplianceRate, s.DaysLogged, pluralDays(s.DaysTracked))

	switch {
	case s.CurrentSaturation >= domain.SaturatedThreshold:
		fmt.Fprintf(w, "%-22s%s\n", "Days until saturated:", "saturated")
	default:
		fmt.Fprintf(w, "%-22s%d\n", "Days until saturated:", s.DaysUntilSaturated)
	}

	if !history {
		return
	}

	fmt.Fprintln(w)
	for _, p := range s.SaturationHistory {
		bar := int(p.Saturation*historyBarWidth + 0.5)
		fmt.Fprintf(w, "%s %3d%% %s\n", p.Date, domain.Percent(p.Saturation), strings.Repeat("#", bar))
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
