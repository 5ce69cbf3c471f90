package views

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
)

// AppointmentFilter narrows an appointment table. Zero fields match all.
type AppointmentFilter struct {
	Status    clinic.AppointmentStatus
	DoctorID  clinic.ID
	PatientID clinic.ID
	// From and To bound the start time, inclusive of From and exclusive of To.
	From   time.Time
	To     time.Time
	Search string
}

// FilterAppointments returns the appointments matching f, in input order.
func FilterAppointments(appts []clinic.Appointment, f AppointmentFilter, loc *time.Location) []clinic.Appointment {
	q := normalize(f.Search)
	out := make([]clinic.Appointment, 0, len(appts))
	for _, a := range appts {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.DoctorID != "" && doctorOf(a) != f.DoctorID {
			continue
		}
		if f.PatientID != "" && patientOf(a) != f.PatientID {
			continue
		}
		if !f.From.IsZero() || !f.To.IsZero() {
			start, err := a.Start(loc)
			if err != nil {
				continue
			}
			if !f.From.IsZero() && start.Before(f.From) {
				continue
			}
			if !f.To.IsZero() && !start.Before(f.To) {
				continue
			}
		}
		if q != "" && !matchesAppointment(a, q) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func doctorOf(a clinic.Appointment) clinic.ID {
	if a.DoctorID != "" || a.Doctor == nil {
		return a.DoctorID
	}
	return a.Doctor.ID
}

func patientOf(a clinic.Appointment) clinic.ID {
	if a.PatientID != "" || a.Patient == nil {
		return a.PatientID
	}
	return a.Patient.ID
}

func matchesAppointment(a clinic.Appointment, q string) bool {
	fields := []string{a.Notes, string(a.Status), a.Date}
	if a.Patient != nil {
		fields = append(fields, a.Patient.FullName(), a.Patient.Phone, a.Patient.Email)
	}
	if a.Doctor != nil {
		fields = append(fields, a.Doctor.FullName())
	}
	if a.AppointmentType != nil {
		fields = append(fields, a.AppointmentType.Name)
	}
	return containsAny(fields, q)
}

// SortAppointments orders by start time; unparseable dates sort last.
func SortAppointments(appts []clinic.Appointment, loc *time.Location, newestFirst bool) {
	key := func(a clinic.Appointment) (time.Time, bool) {
		t, err := a.Start(loc)
		return t, err == nil
	}
	sort.SliceStable(appts, func(i, j int) bool {
		ti, okI := key(appts[i])
		tj, okJ := key(appts[j])
		if okI != okJ {
			return okI
		}
		if newestFirst {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})
}

// CountByStatus tallies appointments per status for the dashboard cards.
func CountByStatus(appts []clinic.Appointment) map[clinic.AppointmentStatus]int {
	out := make(map[clinic.AppointmentStatus]int, len(clinic.AppointmentStatuses))
	for _, s := range clinic.AppointmentStatuses {
		out[s] = 0
	}
	for _, a := range appts {
		out[a.Status]++
	}
	return out
}

// SearchPatients matches name, email or phone.
func SearchPatients(patients []clinic.Patient, search string) []clinic.Patient {
	q := normalize(search)
	if q == "" {
		return patients
	}
	var out []clinic.Patient
	for _, p := range patients {
		if containsAny([]string{p.FullName(), p.Email, p.Phone}, q) {
			out = append(out, p)
		}
	}
	return out
}

// StockStatus reports the stock level of item. The backend's status wins when
// present; otherwise it is derived from quantity and minimum quantity.
func StockStatus(item clinic.InventoryItem) clinic.InventoryStatus {
	if item.Status != "" {
		return item.Status
	}
	switch {
	case item.Quantity <= 0:
		return clinic.InventoryOutOfStock
	case item.Quantity <= item.MinQuantity:
		return clinic.InventoryLowStock
	default:
		return clinic.InventoryInStock
	}
}

// InventoryFilter narrows the inventory table.
type InventoryFilter struct {
	Status     clinic.InventoryStatus
	CategoryID clinic.ID
	// NeedsRestock keeps low and out of stock items only.
	NeedsRestock bool
	Search       string
}

func FilterInventory(items []clinic.InventoryItem, f InventoryFilter) []clinic.InventoryItem {
	q := normalize(f.Search)
	out := make([]clinic.InventoryItem, 0, len(items))
	for _, it := range items {
		st := StockStatus(it)
		if f.Status != "" && st != f.Status {
			continue
		}
		if f.NeedsRestock && st == clinic.InventoryInStock {
			continue
		}
		if f.CategoryID != "" && categoryOf(it) != f.CategoryID {
			continue
		}
		if q != "" {
			fields := []string{it.Name}
			if it.Category != nil {
				fields = append(fields, it.Category.Name)
			}
			if !containsAny(fields, q) {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func categoryOf(it clinic.InventoryItem) clinic.ID {
	if it.CategoryID != "" || it.Category == nil {
		return it.CategoryID
	}
	return it.Category.ID
}

// TaskFilter narrows the task list by status/priority name and text.
type TaskFilter struct {
	Status   string
	Priority string
	Search   string
}

func FilterTasks(tasks []clinic.Task, f TaskFilter) []clinic.Task {
	q := normalize(f.Search)
	out := make([]clinic.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Status != "" && (t.Status == nil || !strings.EqualFold(t.Status.Name, f.Status)) {
			continue
		}
		if f.Priority != "" && (t.Priority == nil || !strings.EqualFold(t.Priority.Name, f.Priority)) {
			continue
		}
		if q != "" && !containsAny([]string{t.Title, t.Description}, q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortTasks puts the most urgent priority first, then the earliest due date.
// Tasks without a due date go last within their priority.
func SortTasks(tasks []clinic.Task) {
	level := func(t clinic.Task) int {
		if t.Priority == nil {
			return math.MinInt
		}
		return t.Priority.Level
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		li, lj := level(tasks[i]), level(tasks[j])
		if li != lj {
			return li > lj
		}
		di, dj := tasks[i].DueDate, tasks[j].DueDate
		if (di == "") != (dj == "") {
			return dj == ""
		}
		return di < dj
	})
}

// FilterUsers narrows the admin user table by role and text.
func FilterUsers(users []clinic.User, role clinic.Role, search string) []clinic.User {
	q := normalize(search)
	out := make([]clinic.User, 0, len(users))
	for _, u := range users {
		if role != "" && u.Role != role {
			continue
		}
		if q != "" && !containsAny([]string{u.FullName(), u.Email, u.Phone}, q) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Billing summarises what was charged and paid for a treatment course.
type Billing struct {
	Total    float64
	Paid     float64
	Balance  float64
	Payments int
}

// Settled reports whether nothing is left to pay.
func (b Billing) Settled() bool {
	return b.Balance <= 0
}

// Bill totals the payments made against action. Amounts are rounded to
// cents to keep float noise out of the balance.
func Bill(action clinic.Action, payments []clinic.Payment) Billing {
	b := Billing{Total: roundCents(action.TotalAmount)}
	for _, p := range payments {
		if p.ActionID != "" && action.ID != "" && p.ActionID != action.ID {
			continue
		}
		b.Paid += p.Amount
		b.Payments++
	}
	b.Paid = roundCents(b.Paid)
	b.Balance = roundCents(b.Total - b.Paid)
	return b
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(fields []string, q string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
