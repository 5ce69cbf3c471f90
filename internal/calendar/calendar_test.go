package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfman30/dental-clinic-client/internal/clinic"
)

func TestMonthGrid_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		weekStart time.Weekday
		leading   int
		rows      int
	}{
		// February 2026 starts on a Sunday and has 28 days.
		{"starts on sunday", 2026, time.February, time.Sunday, 0, 4},
		// August 2026 starts on a Saturday and has 31 days.
		{"31 days starting saturday", 2026, time.August, time.Sunday, 6, 6},
		{"leap february", 2024, time.February, time.Sunday, 4, 5},
		{"monday weeks", 2026, time.February, time.Monday, 6, 5},
		{"monday weeks saturday start", 2026, time.August, time.Monday, 5, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MonthGrid(tt.year, tt.month, tt.weekStart, time.UTC)
			assert.Equal(t, tt.leading, g.Leading)
			assert.Len(t, g.Rows(), tt.rows)
			assert.Zero(t, len(g.Cells)%Columns)

			for i := 0; i < g.Leading; i++ {
				assert.True(t, g.Cells[i].Blank(), "cell %d should be blank", i)
			}
			first := g.Cells[g.Leading]
			assert.Equal(t, 1, first.Day)
			assert.Equal(t, first.Date.Weekday(), first.Weekday, "1st must sit under its weekday")

			days := 0
			for _, c := range g.Cells {
				if !c.Blank() {
					days++
					assert.Equal(t, c.Date.Weekday(), c.Weekday)
				}
			}
			assert.Equal(t, DaysIn(tt.year, tt.month), days)
		})
	}
}

func TestMonthGrid_NeverExceedsSixRows(t *testing.T) {
	for year := 2024; year <= 2027; year++ {
		for m := time.January; m <= time.December; m++ {
			g := MonthGrid(year, m, time.Sunday, time.UTC)
			assert.LessOrEqual(t, len(g.Cells), 42, "%s %d", m, year)
		}
	}
}

func TestMonthGrid_NormalizesMonth(t *testing.T) {
	g := MonthGrid(2026, 13, time.Sunday, time.UTC)
	assert.Equal(t, 2027, g.Year)
	assert.Equal(t, time.January, g.Month)
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2026, time.January))
	assert.Equal(t, 28, DaysIn(2026, time.February))
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 30, DaysIn(2026, time.November))
}

func TestGridCellLookup(t *testing.T) {
	g := MonthGrid(2026, time.August, time.Sunday, time.UTC)
	require.NotNil(t, g.Cell(1))
	assert.Equal(t, time.Saturday, g.Cell(1).Weekday)
	require.NotNil(t, g.Cell(31))
	assert.Nil(t, g.Cell(0))
	assert.Nil(t, g.Cell(32))
}

func TestHeaders(t *testing.T) {
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, Headers(time.Sunday))
	assert.Equal(t, "Mon", Headers(time.Monday)[0])
	assert.Equal(t, "Sun", Headers(time.Monday)[6])
}

func TestPlace(t *testing.T) {
	g := MonthGrid(2026, time.October, time.Sunday, time.UTC)
	appts := []clinic.Appointment{
		{ID: "1", Date: "2026-10-20", Time: "15:00"},
		{ID: "2", Date: "2026-10-20", Time: "09:00"},
		{ID: "3", Date: "2026-11-01", Time: "09:00"},
		{ID: "4", Date: "not-a-date"},
	}
	rest := g.Place(appts)

	cell := g.Cell(20)
	require.NotNil(t, cell)
	require.Len(t, cell.Appointments, 2)
	assert.Equal(t, clinic.ID("2"), cell.Appointments[0].ID, "earlier appointment first")
	assert.Len(t, rest, 2)
}

func TestRender(t *testing.T) {
	g := MonthGrid(2026, time.February, time.Sunday, time.UTC)
	g.Place([]clinic.Appointment{{ID: "1", Date: "2026-02-03", Time: "10:00"}})

	var b strings.Builder
	require.NoError(t, g.Render(&b))
	out := b.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines[0], "February 2026")
	assert.True(t, strings.HasPrefix(lines[1], "Sun"))
	assert.Len(t, lines, 2+4)
	assert.Contains(t, out, " 3[1]")
}

func TestDaySchedule(t *testing.T) {
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	appts := []clinic.Appointment{
		{ID: "a", Date: "2026-10-20", Time: "09:15"},
		{ID: "b", Date: "2026-10-20", Time: "09:00"},
		{ID: "c", Date: "2026-10-20", Time: "19:00"},
		{ID: "d", Date: "2026-10-21", Time: "09:00"},
	}
	slots, outside := DaySchedule(day, 9*time.Hour, 12*time.Hour, 30*time.Minute, appts)

	require.Len(t, slots, 6)
	assert.Equal(t, time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Len(t, slots[0].Appointments, 2)
	assert.Empty(t, slots[1].Appointments)
	require.Len(t, outside, 1)
	assert.Equal(t, clinic.ID("c"), outside[0].ID)
}
