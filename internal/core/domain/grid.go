package domain

import "fmt"

type DayCell struct {
	Index      int     `json:"index"`
	Date       string  `json:"date"`
	DayNumber  int     `json:"day_number"`
	DayLetter  string  `json:"day_letter"`
	Logged     bool    `json:"logged"`
	Future     bool    `json:"future"`
	Saturation float64 `json:"saturation"`
	Percent    int     `json:"percent"`
	Band       Band    `json:"band"`
	Shade      int     `json:"shade"`
	ColorClass string  `json:"color_class"`
	Title      string  `json:"title"`
}

type WeekRow struct {
	StartDate string    `json:"start_date"`
	Days      []DayCell `json:"days"`
}

type GridView struct {
	Cutoff     string    `json:"cutoff"`
	Expanded   bool      `json:"expanded"`
	TotalWeeks int       `json:"total_weeks"`
	Weeks      []WeekRow `json:"weeks"`
}

// BuildGrid lays the log out as week rows. Collapsed grids keep only the
// most recent CompactWeeks rows; cell indexes stay global either way.
func BuildGrid(entries []LogEntry, cutoff string, expanded bool) GridView {
	saturations := ComputeSaturations(entries, cutoff)
	weeks := SplitWeeks(entries)

	first := 0
	if !expanded && len(weeks) > CompactWeeks {
		first = len(weeks) - CompactWeeks
	}

	view := GridView{
		Cutoff:     cutoff,
		Expanded:   expanded,
		TotalWeeks: len(weeks),
		Weeks:      make([]WeekRow, 0, len(weeks)-first),
	}

	for w := first; w < len(weeks); w++ {
		row := WeekRow{
			StartDate: weeks[w][0].Date,
			Days:      make([]DayCell, 0, len(weeks[w])),
		}
		for d, e := range weeks[w] {
			index := w*DaysPerWeek + d
			row.Days = append(row.Days, newDayCell(index, e, saturations[index], cutoff))
		}
		view.Weeks = append(view.Weeks, row)
	}

	return view
}

func newDayCell(index int, e LogEntry, sat float64, cutoff string) DayCell {
	cell := DayCell{
		Index:     index,
		Date:      e.Date,
		DayNumber: DayNumber(e.Date),
		DayLetter: DayLetter(e.Date),
		Logged:    e.Logged,
	}

	if e.Date > cutoff {
		cell.Future = true
		cell.ColorClass = FutureClass
		cell.Title = fmt.Sprintf("%s (No data)", e.Date)
		return cell
	}

	cell.Saturation = sat
	cell.Percent = Percent(sat)
	cell.Band = BandFor(sat)
	cell.Shade = ShadeFor(sat)
	cell.ColorClass = cell.Band.ColorClass()
	cell.Title = fmt.Sprintf("%s - Saturation: %d%%", e.Date, cell.Percent)
	return cell
}
