package main

import (
	"context"
	"strings"
	"time"

	"github.com/wolfman30/dental-clinic-client/internal/calendar"
	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/views"
)

func runCalendar(ctx context.Context, a *app, args []string) error {
	fs := a.flags("calendar")
	month := fs.String("month", "", "month to show, YYYY-MM (default current)")
	day := fs.String("day", "", "show the schedule of one day, YYYY-MM-DD")
	monday := fs.Bool("monday", false, "start weeks on Monday")
	open := fs.String("open", "09:00", "day view opening time")
	closing := fs.String("close", "18:00", "day view closing time")
	step := fs.Duration("step", 30*time.Minute, "day view slot length")
	if _, err := parseWithArgs(fs, args, 0); err != nil {
		return err
	}

	res := views.Load(ctx, a.api.Appointments.List)
	if res.Err != nil {
		return res.Err
	}

	if *day != "" {
		d, err := parseDay(*day, a.loc)
		if err != nil {
			return err
		}
		from, err := parseClock(*open)
		if err != nil {
			return err
		}
		to, err := parseClock(*closing)
		if err != nil {
			return err
		}
		if to <= from {
			return usagef("-close must be after -open")
		}
		return printDay(a, d, from, to, *step, res.Data)
	}

	ref := a.now().In(a.loc)
	if *month != "" {
		m, err := time.ParseInLocation("2006-01", *month, a.loc)
		if err != nil {
			return usagef("invalid month %q, want YYYY-MM", *month)
		}
		ref = m
	}
	weekStart := time.Sunday
	if *monday {
		weekStart = time.Monday
	}

	grid := calendar.MonthGrid(ref.Year(), ref.Month(), weekStart, a.loc)
	grid.Place(res.Data)
	if err := grid.Render(a.stdout); err != nil {
		return err
	}
	for _, c := range grid.Cells {
		if len(c.Appointments) == 0 {
			continue
		}
		a.printf("\n%s\n", c.Date.Format("Mon 2 Jan"))
		for _, ap := range c.Appointments {
			a.printf("  %s\n", describe(ap))
		}
	}
	return nil
}

func printDay(a *app, day time.Time, open, close, step time.Duration, appts []clinic.Appointment) error {
	slots, outside := calendar.DaySchedule(day, open, close, step, appts)
	a.printf("%s\n", day.Format("Monday 2 January 2006"))
	t := a.table("SLOT", "APPOINTMENTS")
	for _, s := range slots {
		booked := make([]string, 0, len(s.Appointments))
		for _, ap := range s.Appointments {
			booked = append(booked, describe(ap))
		}
		t.row(s.Start.Format(clinic.TimeLayout)+"-"+s.End.Format(clinic.TimeLayout), orDash(strings.Join(booked, "; ")))
	}
	if err := t.flush(); err != nil {
		return err
	}
	if len(outside) > 0 {
		a.printf("Outside opening hours:\n")
		for _, ap := range outside {
			a.printf("  %s\n", describe(ap))
		}
	}
	return nil
}

func describe(ap clinic.Appointment) string {
	parts := []string{orDash(ap.Time), orDash(patientName(ap))}
	if name := typeName(ap); name != "" {
		parts = append(parts, name)
	}
	if ap.Status != "" {
		parts = append(parts, strings.ToLower(string(ap.Status)))
	}
	return strings.Join(parts, " ")
}
