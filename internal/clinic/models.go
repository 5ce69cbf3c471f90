package clinic

import (
	"fmt"
	"strings"
	"time"
)

// Date and time layouts used by the backend for appointment slots.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Role is a user's role in the clinic.
type Role string

const (
	RolePatient      Role = "PATIENT"
	RoleDoctor       Role = "DOCTOR"
	RoleReceptionist Role = "RECEPTIONIST"
	RoleAdmin        Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleReceptionist, RoleAdmin:
		return true
	}
	return false
}

// ParseRole accepts any casing.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("clinic: unknown role %q", s)
	}
	return r, nil
}

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusWaiting   AppointmentStatus = "WAITING"
	StatusUpcoming  AppointmentStatus = "UPCOMING"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// AppointmentStatuses lists every status in display order.
var AppointmentStatuses = []AppointmentStatus{StatusWaiting, StatusUpcoming, StatusCompleted, StatusCancelled}

func (s AppointmentStatus) Valid() bool {
	for _, known := range AppointmentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseAppointmentStatus accepts any casing.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	st := AppointmentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("clinic: unknown appointment status %q", s)
	}
	return st, nil
}

// InventoryStatus is the stock level reported for an inventory item.
type InventoryStatus string

const (
	InventoryInStock    InventoryStatus = "IN_STOCK"
	InventoryLowStock   InventoryStatus = "LOW_STOCK"
	InventoryOutOfStock InventoryStatus = "OUT_OF_STOCK"
)

func ParseInventoryStatus(s string) (InventoryStatus, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	st := InventoryStatus(normalized)
	switch st {
	case InventoryInStock, InventoryLowStock, InventoryOutOfStock:
		return st, nil
	}
	return "", fmt.Errorf("clinic: unknown inventory status %q", s)
}

// User is an account of any role.
type User struct {
	ID                ID         `json:"id,omitempty"`
	FirstName         string     `json:"firstName,omitempty"`
	LastName          string     `json:"lastName,omitempty"`
	Email             string     `json:"email,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Role              Role       `json:"role,omitempty"`
	IsProfileComplete bool       `json:"isProfileComplete,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
}

// FullName joins first and last names.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Doctor struct {
	ID        ID     `json:"id,omitempty"`
	UserID    ID     `json:"userId,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Specialty string `json:"specialty,omitempty"`
}

func (d Doctor) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

type Patient struct {
	ID          ID     `json:"id,omitempty"`
	UserID      ID     `json:"userId,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Address     string `json:"address,omitempty"`
}

func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Action is a billable treatment course grouping appointments and payments
// for one patient.
type Action struct {
	ID           ID            `json:"id,omitempty"`
	PatientID    ID            `json:"patientId,omitempty"`
	DoctorID     ID            `json:"doctorId,omitempty"`
	Name         string        `json:"name,omitempty"`
	Description  string        `json:"description,omitempty"`
	TotalAmount  float64       `json:"totalAmount,omitempty"`
	Status       string        `json:"status,omitempty"`
	StartDate    string        `json:"startDate,omitempty"`
	Patient      *Patient      `json:"patient,omitempty"`
	Appointments []Appointment `json:"appointments,omitempty"`
	Payments     []Payment     `json:"payments,omitempty"`
}

type AppointmentType struct {
	ID       ID      `json:"id,omitempty"`
	Name     string  `json:"name,omitempty"`
	Duration int     `json:"duration,omitempty"` // minutes
	Price    float64 `json:"price,omitempty"`
}

// Appointment is a scheduled visit tied to an action and a doctor.
type Appointment struct {
	ID                ID                `json:"id,omitempty"`
	ActionID          ID                `json:"actionId,omitempty"`
	DoctorID          ID                `json:"doctorId,omitempty"`
	PatientID         ID                `json:"patientId,omitempty"`
	AppointmentTypeID ID                `json:"appointmentTypeId,omitempty"`
	Date              string            `json:"date,omitempty"`
	Time              string            `json:"time,omitempty"`
	Status            AppointmentStatus `json:"status,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	Doctor            *Doctor           `json:"doctor,omitempty"`
	Patient           *Patient          `json:"patient,omitempty"`
	AppointmentType   *AppointmentType  `json:"appointmentType,omitempty"`
}

// Start combines Date and Time in loc. A missing time means start of day.
// Full RFC 3339 timestamps in Date are accepted as well.
func (a Appointment) Start(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if ts, err := time.Parse(time.RFC3339, a.Date); err == nil {
		return ts.In(loc), nil
	}
	day, err := time.ParseInLocation(DateLayout, a.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("clinic: appointment %s date %q: %w", a.ID, a.Date, err)
	}
	if strings.TrimSpace(a.Time) == "" {
		return day, nil
	}
	clock, err := time.Parse(TimeLayout, strings.TrimSpace(a.Time))
	if err != nil {
		return time.Time{}, fmt.Errorf("clinic: appointment %s time %q: %w", a.ID, a.Time, err)
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute), nil
}

type Payment struct {
	ID       ID      `json:"id,omitempty"`
	ActionID ID      `json:"actionId,omitempty"`
	Amount   float64 `json:"amount"`
	Method   string  `json:"method,omitempty"`
	Date     string  `json:"date,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

type Category struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"name"`
}

type Unit struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"name"`
}

type InventoryItem struct {
	ID             ID              `json:"id,omitempty"`
	Name           string          `json:"name,omitempty"`
	CategoryID     ID              `json:"categoryId,omitempty"`
	UnitID         ID              `json:"unitId,omitempty"`
	Quantity       float64         `json:"quantity"`
	MinQuantity    float64         `json:"minQuantity,omitempty"`
	Status         InventoryStatus `json:"status,omitempty"`
	ExpirationDate string          `json:"expirationDate,omitempty"`
	Category       *Category       `json:"category,omitempty"`
	Unit           *Unit           `json:"unit,omitempty"`
}

type TaskStatus struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"name"`
}

type TaskPriority struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"name"`
	// Level orders priorities; higher is more urgent.
	Level int `json:"level,omitempty"`
}

type Task struct {
	ID           ID            `json:"id,omitempty"`
	Title        string        `json:"title,omitempty"`
	Description  string        `json:"description,omitempty"`
	AssignedToID ID            `json:"assignedToId,omitempty"`
	CreatedByID  ID            `json:"createdById,omitempty"`
	StatusID     ID            `json:"statusId,omitempty"`
	PriorityID   ID            `json:"priorityId,omitempty"`
	DueDate      string        `json:"dueDate,omitempty"`
	Completed    bool          `json:"completed,omitempty"`
	Status       *TaskStatus   `json:"status,omitempty"`
	Priority     *TaskPriority `json:"priority,omitempty"`
	AssignedTo   *User         `json:"assignedTo,omitempty"`
}

// Message is the acknowledgement body returned by auth and delete endpoints.
type Message struct {
	Message string `json:"message,omitempty"`
}
