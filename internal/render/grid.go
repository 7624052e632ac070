package render

import (
	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
)

// Cell is one grid slot. Day is zero for leading and trailing blanks; Item is
// nil when the payload carried no record for that day.
type Cell struct {
	Day  int
	Item *attendance.CalendarDay
}

// Grid lays the month out in weeks of 7 columns, Sunday first, with
// cal.FirstWeekday leading blanks.
func Grid(cal attendance.Calendar) [][]Cell {
	if cal.Days <= 0 {
		return nil
	}

	byDay := make(map[int]*attendance.CalendarDay, len(cal.Items))
	for i := range cal.Items {
		byDay[cal.Items[i].Day] = &cal.Items[i]
	}

	lead := ((cal.FirstWeekday % 7) + 7) % 7
	rows := (cal.Days + lead + 6) / 7
	grid := make([][]Cell, rows)

	for r := 0; r < rows; r++ {
		week := make([]Cell, 7)
		for c := 0; c < 7; c++ {
			day := r*7 + c - lead + 1
			if day < 1 || day > cal.Days {
				continue
			}
			week[c] = Cell{Day: day, Item: byDay[day]}
		}
		grid[r] = week
	}

	return grid
}
