package clinic

import (
	"context"

	"github.com/wolfman30/dental-clinic-client/internal/gateway"
)

// AppointmentsService wraps /appointments and its scoped sub-paths.
type AppointmentsService struct {
	r gateway.Requester
}

// RescheduleRequest moves an appointment to a new slot.
type RescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time,omitempty"`
}

// StatusUpdate changes an appointment's status.
type StatusUpdate struct {
	Status AppointmentStatus `json:"status"`
}

func (s *AppointmentsService) List(ctx context.Context) ([]Appointment, error) {
	return list[Appointment](ctx, s.r, "/appointments")
}

func (s *AppointmentsService) Get(ctx context.Context, id ID) (Appointment, error) {
	return get[Appointment](ctx, s.r, pathf("/appointments/%s", id))
}

func (s *AppointmentsService) ByPatient(ctx context.Context, patientID ID) ([]Appointment, error) {
	return list[Appointment](ctx, s.r, pathf("/appointments/patient/%s", patientID))
}

func (s *AppointmentsService) ByDoctor(ctx context.Context, doctorID ID) ([]Appointment, error) {
	return list[Appointment](ctx, s.r, pathf("/appointments/doctor/%s", doctorID))
}

func (s *AppointmentsService) ByAction(ctx context.Context, actionID ID) ([]Appointment, error) {
	return list[Appointment](ctx, s.r, pathf("/appointments/action/%s", actionID))
}

// ByStatus lists appointments in one status, e.g. the WAITING room queue.
func (s *AppointmentsService) ByStatus(ctx context.Context, status AppointmentStatus) ([]Appointment, error) {
	return list[Appointment](ctx, s.r, pathf("/appointments/status/%s", status))
}

func (s *AppointmentsService) Create(ctx context.Context, a Appointment) (Appointment, error) {
	return send[Appointment](ctx, s.r, gateway.Post, "/appointments", a)
}

func (s *AppointmentsService) Update(ctx context.Context, id ID, a Appointment) (Appointment, error) {
	return send[Appointment](ctx, s.r, gateway.Put, pathf("/appointments/%s", id), a)
}

// Reschedule is an update that only carries the new date and time.
func (s *AppointmentsService) Reschedule(ctx context.Context, id ID, req RescheduleRequest) (Appointment, error) {
	return send[Appointment](ctx, s.r, gateway.Put, pathf("/appointments/%s", id), req)
}

func (s *AppointmentsService) SetStatus(ctx context.Context, id ID, status AppointmentStatus) (Appointment, error) {
	return send[Appointment](ctx, s.r, gateway.Put, pathf("/appointments/%s/status", id), StatusUpdate{Status: status})
}

func (s *AppointmentsService) Delete(ctx context.Context, id ID) error {
	return remove(ctx, s.r, pathf("/appointments/%s", id))
}

// AppointmentTypesService wraps /appointmentType.
type AppointmentTypesService struct {
	r gateway.Requester
}

func (s *AppointmentTypesService) List(ctx context.Context) ([]AppointmentType, error) {
	return list[AppointmentType](ctx, s.r, "/appointmentType")
}

func (s *AppointmentTypesService) Create(ctx context.Context, t AppointmentType) (AppointmentType, error) {
	return send[AppointmentType](ctx, s.r, gateway.Post, "/appointmentType", t)
}

func (s *AppointmentTypesService) Delete(ctx context.Context, id ID) error {
	return remove(ctx, s.r, pathf("/appointmentType/%s", id))
}
