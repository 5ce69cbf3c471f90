// Package calendar lays out month grids and day schedules for appointment
// views.
package calendar

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
)

// Columns is the width of every month grid.
const Columns = 7

// Cell is one square of a month grid. Blank cells pad the first and last rows
// and have Day == 0.
type Cell struct {
	Day          int
	Date         time.Time
	Weekday      time.Weekday
	Appointments []clinic.Appointment
}

// Blank reports whether the cell is padding outside the month.
func (c Cell) Blank() bool {
	return c.Day == 0
}

// Grid is a month laid out in rows of seven cells.
type Grid struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	Leading   int
	Cells     []Cell
	loc       *time.Location
}

// DaysIn returns the number of days in month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LeadingBlanks is the number of empty cells before the 1st when weeks start
// on weekStart.
func LeadingBlanks(year int, month time.Month, weekStart time.Weekday) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(first) - int(weekStart) + Columns) % Columns
}

// MonthGrid builds the grid for month. The 1st sits under its weekday and the
// last row is padded to a full week.
func MonthGrid(year int, month time.Month, weekStart time.Weekday, loc *time.Location) Grid {
	if loc == nil {
		loc = time.Local
	}
	// Normalize out-of-range months the same way time.Date does.
	norm := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	year, month = norm.Year(), norm.Month()

	leading := LeadingBlanks(year, month, weekStart)
	days := DaysIn(year, month)
	total := leading + days
	if rem := total % Columns; rem != 0 {
		total += Columns - rem
	}

	cells := make([]Cell, total)
	for i := range cells {
		cells[i].Weekday = time.Weekday((int(weekStart) + i) % Columns)
	}
	for d := 1; d <= days; d++ {
		c := &cells[leading+d-1]
		c.Day = d
		c.Date = time.Date(year, month, d, 0, 0, 0, 0, loc)
	}
	return Grid{Year: year, Month: month, WeekStart: weekStart, Leading: leading, Cells: cells, loc: loc}
}

// Rows splits the grid into weeks.
func (g Grid) Rows() [][]Cell {
	rows := make([][]Cell, 0, len(g.Cells)/Columns)
	for i := 0; i < len(g.Cells); i += Columns {
		rows = append(rows, g.Cells[i:i+Columns])
	}
	return rows
}

// Cell returns the cell of day, or nil when day is outside the month.
func (g Grid) Cell(day int) *Cell {
	idx := g.Leading + day - 1
	if day < 1 || idx >= len(g.Cells) || g.Cells[idx].Day != day {
		return nil
	}
	return &g.Cells[idx]
}

// Headers returns short weekday names starting at weekStart.
func Headers(weekStart time.Weekday) []string {
	out := make([]string, Columns)
	for i := range out {
		out[i] = time.Weekday((int(weekStart) + i) % Columns).String()[:3]
	}
	return out
}

// Place buckets appointments into the cells of their day. Appointments from
// other months, or with unparseable dates, are returned untouched.
func (g *Grid) Place(appts []clinic.Appointment) []clinic.Appointment {
	var rest []clinic.Appointment
	for _, a := range appts {
		start, err := a.Start(g.loc)
		if err != nil || start.Year() != g.Year || start.Month() != g.Month {
			rest = append(rest, a)
			continue
		}
		c := g.Cell(start.Day())
		c.Appointments = append(c.Appointments, a)
	}
	for i := range g.Cells {
		sortByStart(g.Cells[i].Appointments, g.loc)
	}
	return rest
}

// Render writes the grid as a text calendar. Days holding appointments show
// the count in brackets.
func (g Grid) Render(w io.Writer) error {
	var b strings.Builder
	title := fmt.Sprintf("%s %d", g.Month, g.Year)
	width := Columns*6 - 1
	pad := (width - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad) + title + "\n")
	for i, h := range Headers(g.WeekStart) {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%-5s", h)
	}
	b.WriteString("\n")
	for _, row := range g.Rows() {
		for i, c := range row {
			if i > 0 {
				b.WriteString(" ")
			}
			switch {
			case c.Blank():
				b.WriteString("     ")
			case len(c.Appointments) > 0:
				fmt.Fprintf(&b, "%2d[%d]", c.Day, min(len(c.Appointments), 9))
			default:
				fmt.Fprintf(&b, "%2d   ", c.Day)
			}
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Slot is one row of a day schedule.
type Slot struct {
	Start        time.Time
	End          time.Time
	Appointments []clinic.Appointment
}

// DaySchedule splits [open, close) of day into step-sized slots and assigns
// each appointment of that day to the slot containing its start time.
// Appointments outside opening hours are returned as the second value.
func DaySchedule(day time.Time, open, close, step time.Duration, appts []clinic.Appointment) ([]Slot, []clinic.Appointment) {
	if step <= 0 {
		step = 30 * time.Minute
	}
	loc := day.Location()
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	var slots []Slot
	for t := open; t+step <= close; t += step {
		start := midnight.Add(t)
		slots = append(slots, Slot{Start: start, End: start.Add(step)})
	}

	var outside []clinic.Appointment
	for _, a := range appts {
		start, err := a.Start(loc)
		if err != nil || !sameDay(start, midnight) {
			continue
		}
		placed := false
		for i := range slots {
			if !start.Before(slots[i].Start) && start.Before(slots[i].End) {
				slots[i].Appointments = append(slots[i].Appointments, a)
				placed = true
				break
			}
		}
		if !placed {
			outside = append(outside, a)
		}
	}
	return slots, outside
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sortByStart(appts []clinic.Appointment, loc *time.Location) {
	if len(appts) < 2 {
		return
	}
	sort.SliceStable(appts, func(i, j int) bool {
		si, _ := appts[i].Start(loc)
		sj, _ := appts[j].Start(loc)
		return si.Before(sj)
	})
}
