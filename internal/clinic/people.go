package clinic

import (
	"context"

	"github.com/wolfman30/dental-clinic-client/internal/gateway"
)

// DoctorsService wraps /doctors.
type DoctorsService struct {
	r gateway.Requester
}

func (s *DoctorsService) List(ctx context.Context) ([]Doctor, error) {
	return list[Doctor](ctx, s.r, "/doctors")
}

func (s *DoctorsService) Get(ctx context.Context, id ID) (Doctor, error) {
	return get[Doctor](ctx, s.r, pathf("/doctors/%s", id))
}

// PatientsService wraps /patients.
type PatientsService struct {
	r gateway.Requester
}

// PatientRef is the body of /patients/id.
type PatientRef struct {
	PatientID ID `json:"patientId"`
}

func (s *PatientsService) List(ctx context.Context) ([]Patient, error) {
	return list[Patient](ctx, s.r, "/patients")
}

func (s *PatientsService) Get(ctx context.Context, id ID) (Patient, error) {
	return get[Patient](ctx, s.r, pathf("/patients/%s", id))
}

// CurrentID resolves the patient record of the logged-in user.
func (s *PatientsService) CurrentID(ctx context.Context) (ID, error) {
	ref, err := get[PatientRef](ctx, s.r, "/patients/id")
	if err != nil {
		return "", err
	}
	return ref.PatientID, nil
}
