package views

import (
	"fmt"
	"time"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
)

// DefaultDashboardDays is the window used when none is given.
const DefaultDashboardDays = 7

// DayCount is the number of appointments starting on one day.
type DayCount struct {
	Day   time.Time
	Label string
	Total int
	// Attended counts completed appointments.
	Attended int
}

// Dashboard summarises the appointments of a period.
type Dashboard struct {
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Appointments int
	ByStatus     map[clinic.AppointmentStatus]int
	// AttendancePct is completed / (completed + cancelled), in percent.
	AttendancePct float64
	Daily         []DayCount
	Patients      int
	Doctors       int
}

// DashboardWindow returns the [start, end) range covering the last days days
// up to and including the day of now.
func DashboardWindow(now time.Time, days int, loc *time.Location) (time.Time, time.Time, error) {
	if days <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("views: dashboard window must be at least one day, got %d", days)
	}
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	end := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, loc)
	return end.AddDate(0, 0, -days), end, nil
}

// Summarize builds the dashboard for [start, end) from a loaded schedule
// board. Days without appointments are present with zero counts.
func Summarize(board ScheduleBoard, start, end time.Time, loc *time.Location) Dashboard {
	inPeriod := FilterAppointments(board.Appointments, AppointmentFilter{From: start, To: end}, loc)
	d := Dashboard{
		PeriodStart:  start,
		PeriodEnd:    end,
		Appointments: len(inPeriod),
		ByStatus:     CountByStatus(inPeriod),
		Patients:     len(board.Patients),
		Doctors:      len(board.Doctors),
	}

	byDay := make(map[string]*DayCount)
	first := start.In(loc)
	for day := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc); day.Before(end); day = day.AddDate(0, 0, 1) {
		label := day.Format(clinic.DateLayout)
		d.Daily = append(d.Daily, DayCount{Day: day, Label: label})
	}
	for i := range d.Daily {
		byDay[d.Daily[i].Label] = &d.Daily[i]
	}
	for _, a := range inPeriod {
		t, err := a.Start(loc)
		if err != nil {
			continue
		}
		dc, ok := byDay[t.Format(clinic.DateLayout)]
		if !ok {
			continue
		}
		dc.Total++
		if a.Status == clinic.StatusCompleted {
			dc.Attended++
		}
	}

	completed := d.ByStatus[clinic.StatusCompleted]
	if closed := completed + d.ByStatus[clinic.StatusCancelled]; closed > 0 {
		d.AttendancePct = roundCents(float64(completed) / float64(closed) * 100)
	}
	return d
}
