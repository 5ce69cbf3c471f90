package fakebackend

import (
	"fmt"
	"time"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
)

// Seeded accounts. Every password is the role name followed by "123".
const (
	SeedAdminEmail        = "admin@clinic.test"
	SeedDoctorEmail       = "rui.silva@clinic.test"
	SeedReceptionistEmail = "reception@clinic.test"
	SeedPatientEmail      = "ana.lima@clinic.test"
)

type seedUser struct {
	first, last, email, password, phone string
	role                                clinic.Role
}

var seedUsers = []seedUser{
	{"Alice", "Moreira", SeedAdminEmail, "admin123", "+351910000001", clinic.RoleAdmin},
	{"Rui", "Silva", SeedDoctorEmail, "doctor123", "+351910000002", clinic.RoleDoctor},
	{"Marta", "Costa", "marta.costa@clinic.test", "doctor123", "+351910000003", clinic.RoleDoctor},
	{"Sofia", "Reis", SeedReceptionistEmail, "receptionist123", "+351910000004", clinic.RoleReceptionist},
	{"Ana", "Lima", SeedPatientEmail, "patient123", "+351910000005", clinic.RolePatient},
	{"Joao", "Pereira", "joao.pereira@clinic.test", "patient123", "+351910000006", clinic.RolePatient},
}

func (b *Backend) seed() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, su := range seedUsers {
		if _, err := b.createAccount(clinic.User{
			FirstName:         su.first,
			LastName:          su.last,
			Email:             su.email,
			Phone:             su.phone,
			Role:              su.role,
			IsProfileComplete: true,
		}, su.password); err != nil {
			return fmt.Errorf("fakebackend: seed %s: %w", su.email, err)
		}
	}

	doctors := b.doctors.all()
	doctors[0].Specialty = "Orthodontics"
	doctors[1].Specialty = "General dentistry"
	for _, d := range doctors {
		b.doctors.put(d)
	}
	patients := b.patients.all()
	patients[0].DateOfBirth, patients[0].Gender = "1990-04-12", "F"
	patients[1].DateOfBirth, patients[1].Gender = "1984-11-30", "M"
	for _, p := range patients {
		b.patients.put(p)
	}

	checkup := b.apptTypes.insert(clinic.AppointmentType{Name: "Check-up", Duration: 30, Price: 40}, b.newID())
	cleaning := b.apptTypes.insert(clinic.AppointmentType{Name: "Cleaning", Duration: 45, Price: 60}, b.newID())
	implant := b.apptTypes.insert(clinic.AppointmentType{Name: "Implant surgery", Duration: 90, Price: 900}, b.newID())

	now := b.opts.Now()
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(clinic.DateLayout)
	}

	implantCourse := b.actions.insert(clinic.Action{
		PatientID: patients[0].ID, DoctorID: doctors[0].ID, Name: "Implant lower left molar",
		TotalAmount: 1200, Status: "IN_PROGRESS", StartDate: day(-14),
	}, b.newID())
	hygiene := b.actions.insert(clinic.Action{
		PatientID: patients[1].ID, DoctorID: doctors[1].ID, Name: "Yearly hygiene",
		TotalAmount: 100, Status: "IN_PROGRESS", StartDate: day(-1),
	}, b.newID())

	appts := []clinic.Appointment{
		{ActionID: implantCourse.ID, PatientID: patients[0].ID, DoctorID: doctors[0].ID, AppointmentTypeID: checkup.ID, Date: day(-14), Time: "09:00", Status: clinic.StatusCompleted},
		{ActionID: implantCourse.ID, PatientID: patients[0].ID, DoctorID: doctors[0].ID, AppointmentTypeID: implant.ID, Date: day(7), Time: "10:30", Status: clinic.StatusUpcoming},
		{ActionID: hygiene.ID, PatientID: patients[1].ID, DoctorID: doctors[1].ID, AppointmentTypeID: cleaning.ID, Date: day(0), Time: "14:00", Status: clinic.StatusWaiting},
		{ActionID: hygiene.ID, PatientID: patients[1].ID, DoctorID: doctors[1].ID, AppointmentTypeID: checkup.ID, Date: day(-1), Time: "16:00", Status: clinic.StatusCancelled, Notes: "Patient rescheduled by phone"},
	}
	for _, a := range appts {
		b.appointments.insert(a, b.newID())
	}

	b.payments.insert(clinic.Payment{ActionID: implantCourse.ID, Amount: 400, Method: "CARD", Date: day(-14)}, b.newID())
	b.payments.insert(clinic.Payment{ActionID: implantCourse.ID, Amount: 250, Method: "CASH", Date: day(-7)}, b.newID())
	b.payments.insert(clinic.Payment{ActionID: hygiene.ID, Amount: 100, Method: "CARD", Date: day(-1)}, b.newID())

	disposables := b.categories.insert(clinic.Category{Name: "Disposables"}, b.newID())
	materials := b.categories.insert(clinic.Category{Name: "Materials"}, b.newID())
	box := b.units.insert(clinic.Unit{Name: "box"}, b.newID())
	piece := b.units.insert(clinic.Unit{Name: "piece"}, b.newID())
	items := []clinic.InventoryItem{
		{Name: "Nitrile gloves", CategoryID: disposables.ID, UnitID: box.ID, Quantity: 40, MinQuantity: 10},
		{Name: "Surgical masks", CategoryID: disposables.ID, UnitID: box.ID, Quantity: 6, MinQuantity: 10},
		{Name: "Composite resin A2", CategoryID: materials.ID, UnitID: piece.ID, Quantity: 0, MinQuantity: 3},
		{Name: "Titanium implant 4.1mm", CategoryID: materials.ID, UnitID: piece.ID, Quantity: 12, MinQuantity: 4,
			ExpirationDate: now.AddDate(2, 0, 0).Format(clinic.DateLayout)},
	}
	for _, it := range items {
		it.Status = stockStatus(it.Quantity, it.MinQuantity)
		b.inventory.insert(it, b.newID())
	}

	open := b.taskStatuses.insert(clinic.TaskStatus{Name: "Open"}, b.newID())
	b.taskStatuses.insert(clinic.TaskStatus{Name: "In progress"}, b.newID())
	done := b.taskStatuses.insert(clinic.TaskStatus{Name: "Done"}, b.newID())
	low := b.taskPriorities.insert(clinic.TaskPriority{Name: "Low", Level: 1}, b.newID())
	b.taskPriorities.insert(clinic.TaskPriority{Name: "Medium", Level: 2}, b.newID())
	high := b.taskPriorities.insert(clinic.TaskPriority{Name: "High", Level: 3}, b.newID())

	staff := b.accounts.where(func(a account) bool { return a.Role != clinic.RolePatient })
	var admin, reception clinic.ID
	for _, a := range staff {
		switch a.Role {
		case clinic.RoleAdmin:
			admin = a.ID
		case clinic.RoleReceptionist:
			reception = a.ID
		}
	}
	tasks := []clinic.Task{
		{Title: "Reorder surgical masks", AssignedToID: reception, CreatedByID: admin, StatusID: open.ID, PriorityID: high.ID, DueDate: day(2)},
		{Title: "Call lab about crown", AssignedToID: reception, CreatedByID: admin, StatusID: open.ID, PriorityID: low.ID, DueDate: day(5)},
		{Title: "Sterilizer maintenance", CreatedByID: admin, StatusID: done.ID, PriorityID: high.ID, Completed: true, DueDate: day(-3)},
	}
	for _, t := range tasks {
		b.tasks.insert(t, b.newID())
	}

	b.logger.Info("fake backend seeded",
		"users", len(b.accounts.rows),
		"appointments", len(b.appointments.rows),
		"inventory", len(b.inventory.rows),
		"seeded_at", now.Format(time.RFC3339),
	)
	return nil
}
