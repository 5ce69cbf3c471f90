package clinic

import (
	"context"

	"github.com/wolfman30/dental-clinic-client/internal/gateway"
)

// ActionsService wraps /actions.
type ActionsService struct {
	r gateway.Requester
}

func (s *ActionsService) List(ctx context.Context) ([]Action, error) {
	return list[Action](ctx, s.r, "/actions")
}

func (s *ActionsService) Get(ctx context.Context, id ID) (Action, error) {
	return get[Action](ctx, s.r, pathf("/actions/%s", id))
}

// ByPatient lists the treatment courses of one patient.
func (s *ActionsService) ByPatient(ctx context.Context, patientID ID) ([]Action, error) {
	return list[Action](ctx, s.r, pathf("/actions/patient/%s", patientID))
}

func (s *ActionsService) Create(ctx context.Context, a Action) (Action, error) {
	return send[Action](ctx, s.r, gateway.Post, "/actions", a)
}

func (s *ActionsService) Update(ctx context.Context, id ID, a Action) (Action, error) {
	return send[Action](ctx, s.r, gateway.Put, pathf("/actions/%s", id), a)
}

func (s *ActionsService) Delete(ctx context.Context, id ID) error {
	return remove(ctx, s.r, pathf("/actions/%s", id))
}
