package fakebackend_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/fakebackend"
	"github.com/wolfman30/dental-clinic-client/internal/gateway"
	"github.com/wolfman30/dental-clinic-client/internal/session"
	"github.com/wolfman30/dental-clinic-client/internal/views"
	"github.com/wolfman30/dental-clinic-client/pkg/logging"
)

var seedNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newServer(t *testing.T) (*fakebackend.Backend, *httptest.Server) {
	t.Helper()
	b, err := fakebackend.New(fakebackend.Options{
		Secret:   "test-secret",
		Seed:     true,
		Now:      func() time.Time { return seedNow },
		HashCost: bcrypt.MinCost,
		Logger:   logging.Discard(),
	})
	require.NoError(t, err)
	ts := httptest.NewServer(b.Handler())
	t.Cleanup(ts.Close)
	return b, ts
}

func newAPI(ts *httptest.Server) (*gateway.Client, *clinic.API) {
	c := gateway.New(ts.URL, gateway.WithLogger(logging.Discard()))
	return c, clinic.New(c)
}

func login(t *testing.T, api *clinic.API, email, password string) clinic.AuthResponse {
	t.Helper()
	resp, err := api.Auth.Login(context.Background(), clinic.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	return resp
}

func TestUnauthenticatedCallsAreRejected(t *testing.T) {
	_, ts := newServer(t)
	_, api := newAPI(ts)

	_, err := api.Patients.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Unauthorized", err.Error())
	assert.Equal(t, http.StatusUnauthorized, gateway.StatusCode(err))
	assert.True(t, gateway.IsUnauthorized(err))
}

func TestLoginCarriesSessionCookie(t *testing.T) {
	_, ts := newServer(t)
	client, api := newAPI(ts)

	resp := login(t, api, fakebackend.SeedReceptionistEmail, "receptionist123")
	assert.Equal(t, "Login successful", resp.Message)
	require.NotNil(t, resp.User)
	assert.Equal(t, clinic.RoleReceptionist, resp.User.Role)

	tok, ok := client.Session().Cookie(session.TokenCookie)
	require.True(t, ok, "session cookie kept by the client")
	assert.Equal(t, resp.Token, tok)

	id, err := session.DecodeIdentity(client.Session())
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id.UserID)
	assert.Equal(t, clinic.RoleReceptionist, id.Role)

	appts, err := api.Appointments.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, appts, 4)
	for _, a := range appts {
		require.NotNil(t, a.Doctor, "appointments come with their doctor")
		require.NotNil(t, a.Patient)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	_, ts := newServer(t)
	_, api := newAPI(ts)

	_, err := api.Auth.Login(context.Background(), clinic.LoginRequest{Email: fakebackend.SeedAdminEmail, Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestSessionRestoredIntoNewClient(t *testing.T) {
	_, ts := newServer(t)
	first, api := newAPI(ts)
	login(t, api, fakebackend.SeedDoctorEmail, "doctor123")

	second := gateway.New(ts.URL, gateway.WithLogger(logging.Discard()), gateway.WithSession(first.Session()))
	me, err := clinic.New(second).Auth.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fakebackend.SeedDoctorEmail, me.Email)
}

func TestLogoutEndsSession(t *testing.T) {
	_, ts := newServer(t)
	client, api := newAPI(ts)
	login(t, api, fakebackend.SeedPatientEmail, "patient123")

	msg, err := api.Auth.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Logged out successfully", msg.Message)
	_, ok := client.Session().Cookie(session.TokenCookie)
	assert.False(t, ok)

	_, err = api.Auth.Me(context.Background())
	assert.True(t, gateway.IsUnauthorized(err))
}

func TestSignupThenCurrentPatient(t *testing.T) {
	_, ts := newServer(t)
	_, api := newAPI(ts)
	ctx := context.Background()

	resp, err := api.Auth.Signup(ctx, clinic.SignupRequest{
		FirstName: "Eva", LastName: "Nunes", Email: "Eva.Nunes@Example.com", Password: "secret1",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "eva.nunes@example.com", resp.User.Email)
	assert.False(t, resp.User.IsProfileComplete)

	id, err := api.Patients.CurrentID(ctx)
	require.NoError(t, err)
	p, err := api.Patients.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Eva Nunes", p.FullName())

	u, err := api.Auth.CompleteProfile(ctx, clinic.CompleteProfileRequest{Phone: "+351911111111", Gender: "F"})
	require.NoError(t, err)
	assert.True(t, u.IsProfileComplete)

	_, err = api.Auth.Signup(ctx, clinic.SignupRequest{FirstName: "X", LastName: "Y", Email: "eva.nunes@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, "Email already in use", err.Error())
	assert.Equal(t, http.StatusConflict, gateway.StatusCode(err))
}

func TestStaffHaveNoPatientRecord(t *testing.T) {
	_, ts := newServer(t)
	_, api := newAPI(ts)
	login(t, api, fakebackend.SeedAdminEmail, "admin123")

	_, err := api.Patients.CurrentID(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Patient not found", err.Error())
}

func TestAppointmentLifecycle(t *testing.T) {
	_, ts := newServer(t)
	_, api := newAPI(ts)
	ctx := context.Background()
	login(t, api, fakebackend.SeedReceptionistEmail, "receptionist123")

	patients, err := api.Patients.List(ctx)
	require.NoError(t, err)
	doctors, err := api.Doctors.List(ctx)
	require.NoError(t, err)

	created, err := api.Appointments.Create(ctx, clinic.Appointment{
		PatientID: patients[0].ID, DoctorID: doctors[0].ID, Date: "2026-10-22", Time: "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, clinic.StatusUpcoming, created.Status)
	require.NotNil(t, created.Patient)

	moved, err := api.Appointments.Reschedule(ctx, created.ID, clinic.RescheduleRequest{Date: "2026-10-23", Time: "15:30"})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-23", moved.Date)
	assert.Equal(t, "15:30", moved.Time)
	assert.Equal(t, doctors[0].ID, moved.DoctorID, "fields not sent are kept")

	done, err := api.Appointments.SetStatus(ctx, created.ID, clinic.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, clinic.StatusCompleted, done.Status)

	completed, err := api.Appointments.ByStatus(ctx, clinic.StatusCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	byDoctor, err := api.Appointments.ByDoctor(ctx, doctors[0].ID)
	require.NoError(t, err)
	assert.Len(t, byDoctor, 3)

	require.NoError(t, api.Appointments.Delete(ctx, created.ID))
	err = api.Appointments.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, "Appointment not found", err.Error())
	assert.True(t, gateway.IsNotFound(err))
}

func TestAppointmentValidation(t *testing.T) {
	_, ts := newServer(t)
	_, api := newAPI(ts)
	ctx := context.Background()
	login(t, api, fakebackend.SeedReceptionistEmail, "receptionist123")

	_, err := api.Appointments.Create(ctx, clinic.Appointment{Date: "tomorrow"})
	require.Error(t, err)
	assert.Equal(t, "Invalid date or time", err.Error())

	_, err = api.Appointments.SetStatus(ctx, "1", "DONE")
	require.Error(t, err)
	assert.Equal(t, "Invalid status", err.Error())
}

func TestActionBoardBilling(t *testing.T) {
	_, ts := newServer(t)
	_, api := newAPI(ts)
	ctx := context.Background()
	login(t, api, fakebackend.SeedReceptionistEmail, "receptionist123")

	actions, err := api.Actions.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, actions)
	implant := actions[0]

	board, err := views.LoadActionBoard(ctx, api, implant.ID)
	require.NoError(t, err)
	assert.Len(t, board.Appointments, 2)
	assert.Equal(t, 650.0, board.Billing.Paid)
	assert.Equal(t, 550.0, board.Billing.Balance)

	_, err = api.Payments.Create(ctx, clinic.Payment{ActionID: implant.ID, Amount: 550})
	require.NoError(t, err)
	board, err = views.LoadActionBoard(ctx, api, implant.ID)
	require.NoError(t, err)
	assert.True(t, board.Billing.Settled())

	_, err = api.Payments.Create(ctx, clinic.Payment{ActionID: implant.ID, Amount: 0})
	require.Error(t, err)
	assert.Equal(t, "Amount must be positive", err.Error())
}

func TestInventoryStatus(t *testing.T) {
	_, ts := newServer(t)
	_, api := newAPI(ts)
	ctx := context.Background()
	login(t, api, fakebackend.SeedReceptionistEmail, "receptionist123")

	low, err := api.Inventory.ByStatus(ctx, clinic.InventoryLowStock)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Surgical masks", low[0].Name)
	require.NotNil(t, low[0].Category)

	restocked, err := api.Inventory.Update(ctx, low[0].ID, clinic.InventoryItem{Name: low[0].Name, Quantity: 50, MinQuantity: 10})
	require.NoError(t, err)
	assert.Equal(t, clinic.InventoryInStock, restocked.Status)

	_, err = api.Inventory.Update(ctx, "9999", clinic.InventoryItem{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, "Inventory item not found", err.Error())

	board, err := views.LoadInventoryBoard(ctx, api)
	require.NoError(t, err)
	assert.Len(t, board.Categories, 2)
	assert.Len(t, views.FilterInventory(board.Items, views.InventoryFilter{NeedsRestock: true}), 1)
}

func TestTasks(t *testing.T) {
	_, ts := newServer(t)
	_, api := newAPI(ts)
	ctx := context.Background()
	login(t, api, fakebackend.SeedReceptionistEmail, "receptionist123")

	board, err := views.LoadTaskBoard(ctx, api, true)
	require.NoError(t, err)
	require.Len(t, board.Tasks, 2)
	views.SortTasks(board.Tasks)
	assert.Equal(t, "Reorder surgical masks", board.Tasks[0].Title)

	completed, err := api.Tasks.Completed(ctx)
	require.NoError(t, err)
	assert.Len(t, completed, 1)

	created, err := api.Tasks.Create(ctx, clinic.Task{Title: "Confirm tomorrow's patients"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.CreatedByID)

	personal, err := api.Tasks.Personal(ctx)
	require.NoError(t, err)
	assert.Len(t, personal, 3)
}

func TestAdminRoutes(t *testing.T) {
	_, ts := newServer(t)
	ctx := context.Background()

	_, doctor := newAPI(ts)
	login(t, doctor, fakebackend.SeedDoctorEmail, "doctor123")
	_, err := doctor.Admin.Users(ctx)
	require.Error(t, err)
	assert.Equal(t, "Forbidden", err.Error())

	_, admin := newAPI(ts)
	me := login(t, admin, fakebackend.SeedAdminEmail, "admin123")

	u, err := admin.Admin.CreateUser(ctx, clinic.CreateUserRequest{
		FirstName: "Nuno", LastName: "Dias", Email: "nuno@clinic.test", Password: "nuno123", Role: clinic.RoleReceptionist,
	})
	require.NoError(t, err)

	promoted, err := admin.Admin.ChangeRole(ctx, u.ID, clinic.RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, clinic.RoleDoctor, promoted.Role)
	doctors, err := admin.Doctors.List(ctx)
	require.NoError(t, err)
	assert.Len(t, doctors, 3, "a new doctor gets a doctor record")

	_, err = admin.Admin.ChangeRole(ctx, u.ID, "WIZARD")
	require.Error(t, err)
	assert.Equal(t, "Invalid role", err.Error())

	err = admin.Admin.DeleteUser(ctx, me.User.ID)
	require.Error(t, err)
	assert.Equal(t, "You cannot delete your own account", err.Error())
	require.NoError(t, admin.Admin.DeleteUser(ctx, u.ID))

	roles, err := admin.Admin.Roles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 4)
}

func TestPasswordReset(t *testing.T) {
	b, ts := newServer(t)
	_, api := newAPI(ts)
	ctx := context.Background()

	msg, err := api.Auth.ForgotPassword(ctx, clinic.ForgotPasswordRequest{Email: "nobody@clinic.test"})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.Message)
	_, ok := b.PendingReset("nobody@clinic.test")
	assert.False(t, ok)

	_, err = api.Auth.ForgotPassword(ctx, clinic.ForgotPasswordRequest{Email: fakebackend.SeedPatientEmail})
	require.NoError(t, err)
	token, ok := b.PendingReset(fakebackend.SeedPatientEmail)
	require.True(t, ok)

	_, err = api.Auth.ResetPassword(ctx, clinic.ResetPasswordRequest{Token: "bogus", Password: "newpass1"})
	require.Error(t, err)
	assert.Equal(t, "Invalid or expired token", err.Error())

	_, err = api.Auth.ResetPassword(ctx, clinic.ResetPasswordRequest{Token: token, Password: "newpass1"})
	require.NoError(t, err)
	login(t, api, fakebackend.SeedPatientEmail, "newpass1")
}

func TestGoogleLoginRedirects(t *testing.T) {
	_, ts := newServer(t)
	hc := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}

	resp, err := hc.Get(ts.URL + clinic.GoogleAuthPath)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, fakebackend.DefaultGoogleAuthURL, resp.Header.Get("Location"))
}

func TestUnknownRoute(t *testing.T) {
	_, ts := newServer(t)
	client, _ := newAPI(ts)

	_, err := client.Request(context.Background(), gateway.Get, "/nope", nil)
	require.Error(t, err)
	assert.Equal(t, "Not found", err.Error())
}
