// Package clinic holds the backend's record shapes and one thin wrapper per
// endpoint. Wrappers only fix the method and path; all behaviour lives in the
// gateway.
package clinic

import (
	"context"
	"fmt"
	"net/url"

	"github.com/wolfman30/dental-clinic-client/internal/gateway"
)

// API groups the resource wrappers around one gateway.
type API struct {
	Actions          *ActionsService
	Appointments     *AppointmentsService
	AppointmentTypes *AppointmentTypesService
	Auth             *AuthService
	Doctors          *DoctorsService
	Patients         *PatientsService
	Payments         *PaymentsService
	Categories       *CategoriesService
	Inventory        *InventoryService
	Units            *UnitsService
	Tasks            *TasksService
	TaskStatuses     *TaskStatusesService
	TaskPriorities   *TaskPrioritiesService
	Admin            *AdminService
}

// New wires every resource wrapper to r.
func New(r gateway.Requester) *API {
	return &API{
		Actions:          &ActionsService{r: r},
		Appointments:     &AppointmentsService{r: r},
		AppointmentTypes: &AppointmentTypesService{r: r},
		Auth:             &AuthService{r: r},
		Doctors:          &DoctorsService{r: r},
		Patients:         &PatientsService{r: r},
		Payments:         &PaymentsService{r: r},
		Categories:       &CategoriesService{r: r},
		Inventory:        &InventoryService{r: r},
		Units:            &UnitsService{r: r},
		Tasks:            &TasksService{r: r},
		TaskStatuses:     &TaskStatusesService{r: r},
		TaskPriorities:   &TaskPrioritiesService{r: r},
		Admin:            &AdminService{r: r},
	}
}

// pathf builds a path from segments, escaping each one.
func pathf(format string, segments ...any) string {
	escaped := make([]any, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(fmt.Sprint(s))
	}
	return fmt.Sprintf(format, escaped...)
}

func list[T any](ctx context.Context, r gateway.Requester, path string) ([]T, error) {
	out, err := gateway.Do[[]T](ctx, r, gateway.Get, path, nil)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func remove(ctx context.Context, r gateway.Requester, path string) error {
	_, err := r.Request(ctx, gateway.Delete, path, nil)
	return err
}

func get[T any](ctx context.Context, r gateway.Requester, path string) (T, error) {
	return gateway.Do[T](ctx, r, gateway.Get, path, nil)
}

func send[T any](ctx context.Context, r gateway.Requester, method gateway.Method, path string, body any) (T, error) {
	return gateway.Do[T](ctx, r, method, path, body)
}
