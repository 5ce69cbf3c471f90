package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/views"
)

func runDashboard(ctx context.Context, a *app, args []string) error {
	fs := a.flags("dashboard")
	days := fs.Int("days", views.DefaultDashboardDays, "number of days up to today")
	if _, err := parseWithArgs(fs, args, 0); err != nil {
		return err
	}
	start, end, err := views.DashboardWindow(a.now(), *days, a.loc)
	if err != nil {
		return usagef("-days must be at least 1")
	}

	board, err := views.LoadScheduleBoard(ctx, a.api)
	if err != nil {
		return err
	}
	d := views.Summarize(board, start, end, a.loc)

	a.printf("%s to %s\n", start.Format(clinic.DateLayout), end.AddDate(0, 0, -1).Format(clinic.DateLayout))
	a.printf("%d patients, %d doctors, %d appointment types\n", d.Patients, d.Doctors, len(board.Types))
	a.printf("%d appointments", d.Appointments)
	var parts []string
	for _, s := range clinic.AppointmentStatuses {
		parts = append(parts, fmt.Sprintf("%s %d", strings.ToLower(string(s)), d.ByStatus[s]))
	}
	a.printf(" (%s)\n", strings.Join(parts, ", "))
	a.printf("Attendance %.2f%%\n\n", d.AttendancePct)

	t := a.table("DAY", "APPOINTMENTS", "ATTENDED")
	for _, dc := range d.Daily {
		t.row(dc.Day.Format("Mon 2006-01-02"), fmt.Sprint(dc.Total), fmt.Sprint(dc.Attended))
	}
	return t.flush()
}
