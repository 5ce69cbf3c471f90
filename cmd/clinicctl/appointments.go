package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/views"
)

func runAppointments(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return listAppointments(ctx, a, args)
	}
	switch args[0] {
	case "list":
		return listAppointments(ctx, a, args[1:])
	case "reschedule":
		return rescheduleAppointment(ctx, a, args[1:])
	case "status":
		return setAppointmentStatus(ctx, a, args[1:])
	case "cancel":
		return cancelAppointment(ctx, a, args[1:])
	case "delete":
		return deleteAppointment(ctx, a, args[1:])
	}
	return usagef("unknown subcommand %q (list, reschedule, status, cancel, delete)", args[0])
}

func listAppointments(ctx context.Context, a *app, args []string) error {
	fs := a.flags("appointments list")
	status := fs.String("status", "", "WAITING, UPCOMING, COMPLETED or CANCELLED")
	doctor := fs.String("doctor", "", "doctor id")
	patient := fs.String("patient", "", "patient id")
	from := fs.String("from", "", "first day, YYYY-MM-DD")
	to := fs.String("to", "", "last day, YYYY-MM-DD")
	search := fs.String("q", "", "search patient, doctor, type and notes")
	mine := fs.Bool("mine", false, "only the signed-in patient's appointments")
	desc := fs.Bool("desc", false, "newest first")
	if _, err := parseWithArgs(fs, args, 0); err != nil {
		return err
	}

	filter := views.AppointmentFilter{
		DoctorID:  clinic.ID(*doctor),
		PatientID: clinic.ID(*patient),
		Search:    *search,
	}
	if *status != "" {
		st, err := clinic.ParseAppointmentStatus(*status)
		if err != nil {
			return usagef("%v", err)
		}
		filter.Status = st
	}
	if *from != "" {
		day, err := parseDay(*from, a.loc)
		if err != nil {
			return err
		}
		filter.From = day
	}
	if *to != "" {
		day, err := parseDay(*to, a.loc)
		if err != nil {
			return err
		}
		filter.To = day.AddDate(0, 0, 1)
	}

	fetch := a.api.Appointments.List
	if *mine {
		fetch = func(ctx context.Context) ([]clinic.Appointment, error) {
			id, err := a.api.Patients.CurrentID(ctx)
			if err != nil {
				return nil, err
			}
			return a.api.Appointments.ByPatient(ctx, id)
		}
	}
	res := views.Load(ctx, fetch)
	if res.Err != nil {
		return res.Err
	}

	appts := views.FilterAppointments(res.Data, filter, a.loc)
	if len(appts) == 0 {
		a.printf("%s\n", views.NoticeEmpty)
		return nil
	}
	views.SortAppointments(appts, a.loc, *desc)

	t := a.table("ID", "DATE", "TIME", "STATUS", "PATIENT", "DOCTOR", "TYPE")
	for _, ap := range appts {
		t.row(ap.ID.String(), ap.Date, orDash(ap.Time), string(ap.Status),
			orDash(patientName(ap)), orDash(doctorName(ap)), orDash(typeName(ap)))
	}
	if err := t.flush(); err != nil {
		return err
	}
	a.printf("%s\n", statusSummary(appts))
	return nil
}

func statusSummary(appts []clinic.Appointment) string {
	counts := views.CountByStatus(appts)
	parts := make([]string, 0, len(clinic.AppointmentStatuses))
	for _, s := range clinic.AppointmentStatuses {
		if counts[s] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[s], strings.ToLower(string(s))))
		}
	}
	return fmt.Sprintf("%d appointments (%s)", len(appts), strings.Join(parts, ", "))
}

func rescheduleAppointment(ctx context.Context, a *app, args []string) error {
	fs := a.flags("appointments reschedule")
	date := fs.String("date", "", "new day, YYYY-MM-DD")
	clock := fs.String("time", "", "new start time, HH:MM")
	pos, err := parseWithArgs(fs, args, 1, "<appointment-id>")
	if err != nil {
		return err
	}
	if *date == "" {
		return usagef("-date is required")
	}
	if _, err := parseDay(*date, a.loc); err != nil {
		return err
	}
	if *clock != "" {
		if _, err := parseClock(*clock); err != nil {
			return err
		}
	}
	ap, err := a.api.Appointments.Reschedule(ctx, clinic.ID(pos[0]), clinic.RescheduleRequest{Date: *date, Time: *clock})
	if err != nil {
		return err
	}
	a.printf("Appointment %s moved to %s %s\n", ap.ID, ap.Date, ap.Time)
	return nil
}

func setAppointmentStatus(ctx context.Context, a *app, args []string) error {
	fs := a.flags("appointments status")
	pos, err := parseWithArgs(fs, args, 2, "<appointment-id>", "<status>")
	if err != nil {
		return err
	}
	st, err := clinic.ParseAppointmentStatus(pos[1])
	if err != nil {
		return usagef("%v", err)
	}
	return updateStatus(ctx, a, clinic.ID(pos[0]), st)
}

func cancelAppointment(ctx context.Context, a *app, args []string) error {
	fs := a.flags("appointments cancel")
	pos, err := parseWithArgs(fs, args, 1, "<appointment-id>")
	if err != nil {
		return err
	}
	return updateStatus(ctx, a, clinic.ID(pos[0]), clinic.StatusCancelled)
}

func updateStatus(ctx context.Context, a *app, id clinic.ID, st clinic.AppointmentStatus) error {
	ap, err := a.api.Appointments.SetStatus(ctx, id, st)
	if err != nil {
		return err
	}
	a.printf("Appointment %s is now %s\n", ap.ID, ap.Status)
	return nil
}

func deleteAppointment(ctx context.Context, a *app, args []string) error {
	fs := a.flags("appointments delete")
	pos, err := parseWithArgs(fs, args, 1, "<appointment-id>")
	if err != nil {
		return err
	}
	if err := a.api.Appointments.Delete(ctx, clinic.ID(pos[0])); err != nil {
		return err
	}
	a.printf("Appointment %s deleted\n", pos[0])
	return nil
}

func patientName(ap clinic.Appointment) string {
	if ap.Patient != nil {
		return ap.Patient.FullName()
	}
	return ap.PatientID.String()
}

func doctorName(ap clinic.Appointment) string {
	if ap.Doctor != nil {
		return ap.Doctor.FullName()
	}
	return ap.DoctorID.String()
}

func typeName(ap clinic.Appointment) string {
	if ap.AppointmentType != nil {
		return ap.AppointmentType.Name
	}
	return ""
}
