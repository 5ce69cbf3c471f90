package views

import (
	"context"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"golang.org/x/sync/errgroup"
)

// LoadAll runs every fetch concurrently and returns once all of them have
// finished. The first failure cancels the context handed to the others and is
// the error returned.
func LoadAll(ctx context.Context, fetches ...func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, fetch := range fetches {
		g.Go(func() error { return fetch(ctx) })
	}
	return g.Wait()
}

// ScheduleBoard is everything the reception schedule page renders at once.
type ScheduleBoard struct {
	Appointments []clinic.Appointment
	Patients     []clinic.Patient
	Doctors      []clinic.Doctor
	Types        []clinic.AppointmentType
}

// LoadScheduleBoard fetches appointments, patients, doctors and appointment
// types together. The board is returned only when every call succeeded.
func LoadScheduleBoard(ctx context.Context, api *clinic.API) (ScheduleBoard, error) {
	var b ScheduleBoard
	err := LoadAll(ctx,
		func(ctx context.Context) (err error) {
			b.Appointments, err = api.Appointments.List(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			b.Patients, err = api.Patients.List(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			b.Doctors, err = api.Doctors.List(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			b.Types, err = api.AppointmentTypes.List(ctx)
			return err
		},
	)
	if err != nil {
		return ScheduleBoard{}, err
	}
	return b, nil
}

// InventoryBoard backs the inventory page and its item dialog.
type InventoryBoard struct {
	Items      []clinic.InventoryItem
	Categories []clinic.Category
	Units      []clinic.Unit
}

func LoadInventoryBoard(ctx context.Context, api *clinic.API) (InventoryBoard, error) {
	var b InventoryBoard
	err := LoadAll(ctx,
		func(ctx context.Context) (err error) {
			b.Items, err = api.Inventory.List(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			b.Categories, err = api.Categories.List(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			b.Units, err = api.Units.List(ctx)
			return err
		},
	)
	if err != nil {
		return InventoryBoard{}, err
	}
	return b, nil
}

// TaskBoard backs the task page.
type TaskBoard struct {
	Tasks      []clinic.Task
	Statuses   []clinic.TaskStatus
	Priorities []clinic.TaskPriority
}

// LoadTaskBoard loads /tasks/personal instead of every task when personal is
// set.
func LoadTaskBoard(ctx context.Context, api *clinic.API, personal bool) (TaskBoard, error) {
	var b TaskBoard
	err := LoadAll(ctx,
		func(ctx context.Context) (err error) {
			if personal {
				b.Tasks, err = api.Tasks.Personal(ctx)
			} else {
				b.Tasks, err = api.Tasks.List(ctx)
			}
			return err
		},
		func(ctx context.Context) (err error) {
			b.Statuses, err = api.TaskStatuses.List(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			b.Priorities, err = api.TaskPriorities.List(ctx)
			return err
		},
	)
	if err != nil {
		return TaskBoard{}, err
	}
	return b, nil
}

// ActionBoard is the billing dialog of one treatment course.
type ActionBoard struct {
	Action       clinic.Action
	Appointments []clinic.Appointment
	Payments     []clinic.Payment
	Billing      Billing
}

func LoadActionBoard(ctx context.Context, api *clinic.API, actionID clinic.ID) (ActionBoard, error) {
	var b ActionBoard
	err := LoadAll(ctx,
		func(ctx context.Context) (err error) {
			b.Action, err = api.Actions.Get(ctx, actionID)
			return err
		},
		func(ctx context.Context) (err error) {
			b.Appointments, err = api.Appointments.ByAction(ctx, actionID)
			return err
		},
		func(ctx context.Context) (err error) {
			b.Payments, err = api.Payments.ByAction(ctx, actionID)
			return err
		},
	)
	if err != nil {
		return ActionBoard{}, err
	}
	b.Billing = Bill(b.Action, b.Payments)
	return b, nil
}
