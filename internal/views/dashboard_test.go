package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfman30/dental-clinic-client/internal/clinic"
)

func TestDashboardWindow(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)

	start, end, err := DashboardWindow(now, 7, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), end)

	_, _, err = DashboardWindow(now, 0, time.UTC)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	start := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	board := ScheduleBoard{
		Appointments: []clinic.Appointment{
			{ID: "1", Date: "2026-10-17", Time: "09:00", Status: clinic.StatusCompleted},
			{ID: "2", Date: "2026-10-17", Time: "10:00", Status: clinic.StatusCompleted},
			{ID: "3", Date: "2026-10-19", Time: "11:00", Status: clinic.StatusCancelled},
			{ID: "4", Date: "2026-10-19", Time: "12:00", Status: clinic.StatusWaiting},
			{ID: "5", Date: "2026-10-20", Time: "09:00", Status: clinic.StatusUpcoming},
			{ID: "6", Date: "garbage", Status: clinic.StatusCompleted},
		},
		Patients: []clinic.Patient{{ID: "p1"}, {ID: "p2"}},
		Doctors:  []clinic.Doctor{{ID: "d1"}},
	}

	d := Summarize(board, start, end, time.UTC)
	assert.Equal(t, 4, d.Appointments)
	assert.Equal(t, 2, d.ByStatus[clinic.StatusCompleted])
	assert.Equal(t, 0, d.ByStatus[clinic.StatusUpcoming])
	assert.InDelta(t, 66.67, d.AttendancePct, 0.001)
	assert.Equal(t, 2, d.Patients)
	assert.Equal(t, 1, d.Doctors)

	require.Len(t, d.Daily, 3)
	assert.Equal(t, "2026-10-17", d.Daily[0].Label)
	assert.Equal(t, 2, d.Daily[0].Total)
	assert.Equal(t, 2, d.Daily[0].Attended)
	assert.Equal(t, 0, d.Daily[1].Total, "missing days are filled with zero")
	assert.Equal(t, 2, d.Daily[2].Total)
	assert.Equal(t, 0, d.Daily[2].Attended)
}

func TestSummarize_NoClosedAppointments(t *testing.T) {
	start := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	d := Summarize(ScheduleBoard{}, start, start.AddDate(0, 0, 1), time.UTC)
	assert.Zero(t, d.Appointments)
	assert.Zero(t, d.AttendancePct)
	require.Len(t, d.Daily, 1)
}

func TestSummarize_DaysFollowClinicLocation(t *testing.T) {
	clinicTZ := time.FixedZone("UTC-5", -5*60*60)
	start := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	board := ScheduleBoard{Appointments: []clinic.Appointment{
		{ID: "1", Date: "2026-10-18", Time: "20:00", Status: clinic.StatusCompleted},
		{ID: "2", Date: "2026-10-19", Time: "09:00", Status: clinic.StatusWaiting},
	}}

	d := Summarize(board, start, end, clinicTZ)
	require.Equal(t, 2, d.Appointments)

	total := 0
	labels := map[string]int{}
	for _, day := range d.Daily {
		total += day.Total
		labels[day.Label] = day.Total
		assert.Equal(t, clinicTZ, day.Day.Location())
	}
	assert.Equal(t, d.Appointments, total, "every appointment in the window lands on a day")
	assert.Equal(t, 1, labels["2026-10-18"])
	assert.Equal(t, 1, labels["2026-10-19"])
}
