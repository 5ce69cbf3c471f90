package fakebackend

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/http/middleware"
)

func (b *Backend) mountPeople(r chi.Router) {
	doctors := resource[clinic.Doctor]{b: b, t: b.doctors}
	r.Get("/doctors", doctors.list)
	r.Get("/doctors/{id}", doctors.get)

	patients := resource[clinic.Patient]{b: b, t: b.patients}
	r.Get("/patients", patients.list)
	r.Get("/patients/id", b.currentPatientID)
	r.Get("/patients/{id}", patients.get)
}

// currentPatientID resolves the patient record of the session's user.
func (b *Backend) currentPatientID(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.SessionClaimsFromContext(r.Context())
	b.mu.RLock()
	rows := b.patients.where(func(p clinic.Patient) bool { return p.UserID == claims.UserID })
	b.mu.RUnlock()
	if len(rows) == 0 {
		writeErr(w, notFound("Patient not found"))
		return
	}
	writeJSON(w, http.StatusOK, clinic.PatientRef{PatientID: rows[0].ID})
}

func (b *Backend) mountScheduling(r chi.Router) {
	appts := resource[clinic.Appointment]{b: b, t: b.appointments, prepare: b.prepareAppointment, expand: b.expandAppointment}
	appts.crud(r, "/appointments", true, true)
	r.Put("/appointments/{id}/status", b.setAppointmentStatus)
	r.Get("/appointments/patient/{id}", appts.listBy("id", func(a clinic.Appointment, v string) bool { return a.PatientID == clinic.ID(v) }))
	r.Get("/appointments/doctor/{id}", appts.listBy("id", func(a clinic.Appointment, v string) bool { return a.DoctorID == clinic.ID(v) }))
	r.Get("/appointments/action/{id}", appts.listBy("id", func(a clinic.Appointment, v string) bool { return a.ActionID == clinic.ID(v) }))
	r.Get("/appointments/status/{status}", appts.listBy("status", func(a clinic.Appointment, v string) bool {
		return strings.EqualFold(string(a.Status), v)
	}))

	types := resource[clinic.AppointmentType]{b: b, t: b.apptTypes, prepare: func(_ *http.Request, t *clinic.AppointmentType) error {
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" {
			return badRequest("Name is required")
		}
		if t.Duration < 0 || t.Price < 0 {
			return badRequest("Duration and price must not be negative")
		}
		return nil
	}}
	r.Get("/appointmentType", types.list)
	r.Post("/appointmentType", types.create)
	r.Delete("/appointmentType/{id}", types.remove)

	actions := resource[clinic.Action]{b: b, t: b.actions, prepare: b.prepareAction, expand: b.expandAction}
	actions.crud(r, "/actions", true, true)
	r.Get("/actions/patient/{id}", actions.listBy("id", func(a clinic.Action, v string) bool { return a.PatientID == clinic.ID(v) }))
}

func (b *Backend) prepareAppointment(_ *http.Request, a *clinic.Appointment) error {
	a.Doctor, a.Patient, a.AppointmentType = nil, nil, nil
	if strings.TrimSpace(a.Date) == "" {
		return badRequest("Date is required")
	}
	if _, err := a.Start(nil); err != nil {
		return badRequest("Invalid date or time")
	}
	if a.Status == "" {
		a.Status = clinic.StatusUpcoming
	}
	if !a.Status.Valid() {
		return badRequest("Invalid status")
	}
	if a.ActionID != "" {
		action, ok := b.actions.get(a.ActionID)
		if !ok {
			return notFound(b.actions.notFound())
		}
		if a.PatientID == "" {
			a.PatientID = action.PatientID
		}
		if a.DoctorID == "" {
			a.DoctorID = action.DoctorID
		}
	}
	if a.PatientID != "" && !b.patients.has(a.PatientID) {
		return notFound(b.patients.notFound())
	}
	if a.DoctorID != "" && !b.doctors.has(a.DoctorID) {
		return notFound(b.doctors.notFound())
	}
	if a.AppointmentTypeID != "" && !b.apptTypes.has(a.AppointmentTypeID) {
		return notFound(b.apptTypes.notFound())
	}
	return nil
}

func (b *Backend) expandAppointment(a clinic.Appointment) clinic.Appointment {
	if d, ok := b.doctors.get(a.DoctorID); ok {
		a.Doctor = &d
	}
	if p, ok := b.patients.get(a.PatientID); ok {
		a.Patient = &p
	}
	if t, ok := b.apptTypes.get(a.AppointmentTypeID); ok {
		a.AppointmentType = &t
	}
	return a
}

func (b *Backend) setAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id := clinic.ID(chi.URLParam(r, "id"))
	var req clinic.StatusUpdate
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	status, err := clinic.ParseAppointmentStatus(string(req.Status))
	if err != nil {
		writeErr(w, badRequest("Invalid status"))
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.appointments.get(id)
	if !ok {
		writeErr(w, notFound(b.appointments.notFound()))
		return
	}
	a.Status = status
	b.appointments.put(a)
	writeJSON(w, http.StatusOK, b.expandAppointment(a))
}

func (b *Backend) prepareAction(_ *http.Request, a *clinic.Action) error {
	a.Patient, a.Appointments, a.Payments = nil, nil, nil
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return badRequest("Name is required")
	}
	if a.PatientID == "" {
		return badRequest("Patient is required")
	}
	if !b.patients.has(a.PatientID) {
		return notFound(b.patients.notFound())
	}
	if a.DoctorID != "" && !b.doctors.has(a.DoctorID) {
		return notFound(b.doctors.notFound())
	}
	if a.TotalAmount < 0 {
		return badRequest("Total amount must not be negative")
	}
	if a.Status == "" {
		a.Status = "IN_PROGRESS"
	}
	if a.StartDate == "" {
		a.StartDate = b.today()
	}
	return nil
}

func (b *Backend) expandAction(a clinic.Action) clinic.Action {
	if p, ok := b.patients.get(a.PatientID); ok {
		a.Patient = &p
	}
	return a
}

func (b *Backend) mountBilling(r chi.Router) {
	payments := resource[clinic.Payment]{b: b, t: b.payments, prepare: b.preparePayment}
	r.Get("/payments", payments.list)
	r.Post("/payments", payments.create)
	r.Put("/payments/{id}", payments.update)
	r.Delete("/payments/{id}", payments.remove)
	r.Get("/payments/action/{id}", payments.listBy("id", func(p clinic.Payment, v string) bool { return p.ActionID == clinic.ID(v) }))
}

func (b *Backend) preparePayment(_ *http.Request, p *clinic.Payment) error {
	if p.ActionID == "" {
		return badRequest("Action is required")
	}
	if !b.actions.has(p.ActionID) {
		return notFound(b.actions.notFound())
	}
	if p.Amount <= 0 {
		return badRequest("Amount must be positive")
	}
	if p.Method == "" {
		p.Method = "CASH"
	}
	if p.Date == "" {
		p.Date = b.today()
	}
	return nil
}

func (b *Backend) mountInventory(r chi.Router) {
	items := resource[clinic.InventoryItem]{b: b, t: b.inventory, prepare: b.prepareItem, expand: b.expandItem}
	items.crud(r, "/inventory", true, true)
	r.Get("/inventory/status/{status}", func(w http.ResponseWriter, r *http.Request) {
		status, err := clinic.ParseInventoryStatus(chi.URLParam(r, "status"))
		if err != nil {
			writeErr(w, badRequest("Invalid status"))
			return
		}
		b.mu.RLock()
		rows := items.outAll(b.inventory.where(func(it clinic.InventoryItem) bool { return it.Status == status }))
		b.mu.RUnlock()
		writeJSON(w, http.StatusOK, rows)
	})

	named := func(_ *http.Request, name *string) error {
		*name = strings.TrimSpace(*name)
		if *name == "" {
			return badRequest("Name is required")
		}
		return nil
	}
	categories := resource[clinic.Category]{b: b, t: b.categories, prepare: func(r *http.Request, c *clinic.Category) error { return named(r, &c.Name) }}
	r.Get("/categories", categories.list)
	r.Post("/categories", categories.create)
	r.Delete("/categories/{id}", categories.remove)

	units := resource[clinic.Unit]{b: b, t: b.units, prepare: func(r *http.Request, u *clinic.Unit) error { return named(r, &u.Name) }}
	r.Get("/units", units.list)
	r.Post("/units", units.create)
}

// stockStatus derives the stock level the backend reports for an item.
func stockStatus(quantity, minQuantity float64) clinic.InventoryStatus {
	switch {
	case quantity <= 0:
		return clinic.InventoryOutOfStock
	case quantity <= minQuantity:
		return clinic.InventoryLowStock
	default:
		return clinic.InventoryInStock
	}
}

func (b *Backend) prepareItem(_ *http.Request, it *clinic.InventoryItem) error {
	it.Category, it.Unit = nil, nil
	it.Name = strings.TrimSpace(it.Name)
	if it.Name == "" {
		return badRequest("Name is required")
	}
	if it.Quantity < 0 || it.MinQuantity < 0 {
		return badRequest("Quantity must not be negative")
	}
	if it.CategoryID != "" && !b.categories.has(it.CategoryID) {
		return notFound(b.categories.notFound())
	}
	if it.UnitID != "" && !b.units.has(it.UnitID) {
		return notFound(b.units.notFound())
	}
	it.Status = stockStatus(it.Quantity, it.MinQuantity)
	return nil
}

func (b *Backend) expandItem(it clinic.InventoryItem) clinic.InventoryItem {
	if c, ok := b.categories.get(it.CategoryID); ok {
		it.Category = &c
	}
	if u, ok := b.units.get(it.UnitID); ok {
		it.Unit = &u
	}
	return it
}

func (b *Backend) mountTasks(r chi.Router) {
	tasks := resource[clinic.Task]{b: b, t: b.tasks, prepare: b.prepareTask, expand: b.expandTask}
	r.Get("/tasks", tasks.list)
	r.Post("/tasks", tasks.create)
	r.Get("/tasks/personal", func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.SessionClaimsFromContext(r.Context())
		b.mu.RLock()
		rows := tasks.outAll(b.tasks.where(func(t clinic.Task) bool {
			return t.AssignedToID == claims.UserID || (t.AssignedToID == "" && t.CreatedByID == claims.UserID)
		}))
		b.mu.RUnlock()
		writeJSON(w, http.StatusOK, rows)
	})
	r.Get("/tasks/completed", func(w http.ResponseWriter, r *http.Request) {
		b.mu.RLock()
		rows := tasks.outAll(b.tasks.where(func(t clinic.Task) bool { return t.Completed }))
		b.mu.RUnlock()
		writeJSON(w, http.StatusOK, rows)
	})
	r.Put("/tasks/{id}", tasks.update)
	r.Delete("/tasks/{id}", tasks.remove)

	statuses := resource[clinic.TaskStatus]{b: b, t: b.taskStatuses}
	r.Get("/task-status", statuses.list)
	priorities := resource[clinic.TaskPriority]{b: b, t: b.taskPriorities}
	r.Get("/task-priority", priorities.list)
}

func (b *Backend) prepareTask(r *http.Request, t *clinic.Task) error {
	t.Status, t.Priority, t.AssignedTo = nil, nil, nil
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return badRequest("Title is required")
	}
	if t.CreatedByID == "" {
		if claims, ok := middleware.SessionClaimsFromContext(r.Context()); ok {
			t.CreatedByID = claims.UserID
		}
	}
	if t.StatusID != "" && !b.taskStatuses.has(t.StatusID) {
		return notFound(b.taskStatuses.notFound())
	}
	if t.PriorityID != "" && !b.taskPriorities.has(t.PriorityID) {
		return notFound(b.taskPriorities.notFound())
	}
	if t.AssignedToID != "" && !b.accounts.has(t.AssignedToID) {
		return notFound(b.accounts.notFound())
	}
	return nil
}

func (b *Backend) expandTask(t clinic.Task) clinic.Task {
	if s, ok := b.taskStatuses.get(t.StatusID); ok {
		t.Status = &s
	}
	if p, ok := b.taskPriorities.get(t.PriorityID); ok {
		t.Priority = &p
	}
	if a, ok := b.accounts.get(t.AssignedToID); ok {
		u := a.User
		t.AssignedTo = &u
	}
	return t
}
