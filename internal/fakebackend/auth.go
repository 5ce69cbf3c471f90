package fakebackend

import (
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/http/middleware"
	"github.com/wolfman30/dental-clinic-client/internal/session"
)

const (
	minPasswordLen = 6
	resetTokenTTL  = time.Hour
)

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// accountByEmail looks up an account. Callers hold mu.
func (b *Backend) accountByEmail(email string) (account, bool) {
	rows := b.accounts.where(func(a account) bool { return a.Email == email })
	if len(rows) == 0 {
		return account{}, false
	}
	return rows[0], true
}

// createAccount stores a user and the doctor or patient record its role
// needs. Callers hold mu.
func (b *Backend) createAccount(u clinic.User, password string) (account, error) {
	u.Email = normalizeEmail(u.Email)
	if !validEmail(u.Email) {
		return account{}, badRequest("A valid email is required")
	}
	if len(password) < minPasswordLen {
		return account{}, badRequest("Password must be at least 6 characters")
	}
	if strings.TrimSpace(u.FirstName) == "" || strings.TrimSpace(u.LastName) == "" {
		return account{}, badRequest("First and last name are required")
	}
	if _, taken := b.accountByEmail(u.Email); taken {
		return account{}, &apiError{status: http.StatusConflict, msg: "Email already in use"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.opts.HashCost)
	if err != nil {
		return account{}, err
	}
	now := b.opts.Now()
	u.CreatedAt = &now
	acc := b.accounts.insert(account{User: u, PasswordHash: string(hash)}, b.newID())
	b.ensureProfile(acc.User)
	return acc, nil
}

// ensureProfile creates the doctor or patient record of u when missing.
func (b *Backend) ensureProfile(u clinic.User) {
	switch u.Role {
	case clinic.RoleDoctor:
		if len(b.doctors.where(func(d clinic.Doctor) bool { return d.UserID == u.ID })) == 0 {
			b.doctors.insert(clinic.Doctor{UserID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Phone: u.Phone}, b.newID())
		}
	case clinic.RolePatient:
		if len(b.patients.where(func(p clinic.Patient) bool { return p.UserID == u.ID })) == 0 {
			b.patients.insert(clinic.Patient{UserID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Phone: u.Phone}, b.newID())
		}
	}
}

// startSession signs a token for u and sets it as the session cookie.
func (b *Backend) startSession(w http.ResponseWriter, u clinic.User) (string, error) {
	token, err := middleware.SignSessionToken(b.opts.Secret, u, time.Now(), b.opts.TokenTTL)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     session.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(b.opts.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

func (b *Backend) signup(w http.ResponseWriter, r *http.Request) {
	var req clinic.SignupRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	b.mu.Lock()
	acc, err := b.createAccount(clinic.User{
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Email:             req.Email,
		Phone:             strings.TrimSpace(req.Phone),
		Role:              clinic.RolePatient,
		IsProfileComplete: strings.TrimSpace(req.Phone) != "",
	}, req.Password)
	b.mu.Unlock()
	if err != nil {
		writeErr(w, err)
		return
	}
	token, err := b.startSession(w, acc.User)
	if err != nil {
		writeErr(w, err)
		return
	}
	u := acc.User
	writeJSON(w, http.StatusCreated, clinic.AuthResponse{Message: "Signup successful", Token: token, User: &u})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req clinic.LoginRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	b.mu.RLock()
	acc, ok := b.accountByEmail(normalizeEmail(req.Email))
	b.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)) != nil {
		middleware.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	token, err := b.startSession(w, acc.User)
	if err != nil {
		writeErr(w, err)
		return
	}
	u := acc.User
	writeJSON(w, http.StatusOK, clinic.AuthResponse{Message: "Login successful", Token: token, User: &u})
}

func (b *Backend) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeMessage(w, "Logged out successfully")
}

// sessionAccount returns the account behind the request's session.
func (b *Backend) sessionAccount(r *http.Request) (account, bool) {
	claims, ok := middleware.SessionClaimsFromContext(r.Context())
	if !ok {
		return account{}, false
	}
	return b.accounts.get(claims.UserID)
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	b.mu.RLock()
	acc, ok := b.sessionAccount(r)
	b.mu.RUnlock()
	if !ok {
		writeErr(w, notFound(b.accounts.notFound()))
		return
	}
	writeJSON(w, http.StatusOK, acc.User)
}

func (b *Backend) completeProfile(w http.ResponseWriter, r *http.Request) {
	var req clinic.CompleteProfileRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	if strings.TrimSpace(req.Phone) == "" {
		writeErr(w, badRequest("Phone is required"))
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.sessionAccount(r)
	if !ok {
		writeErr(w, notFound(b.accounts.notFound()))
		return
	}
	acc.Phone = strings.TrimSpace(req.Phone)
	acc.IsProfileComplete = true
	b.accounts.put(acc)

	for _, p := range b.patients.where(func(p clinic.Patient) bool { return p.UserID == acc.ID }) {
		p.Phone = acc.Phone
		if req.DateOfBirth != "" {
			p.DateOfBirth = req.DateOfBirth
		}
		if req.Gender != "" {
			p.Gender = req.Gender
		}
		if req.Address != "" {
			p.Address = req.Address
		}
		b.patients.put(p)
	}
	writeJSON(w, http.StatusOK, acc.User)
}

// forgotPassword answers the same way whether or not the email exists. The
// reset token is logged in place of being mailed.
func (b *Backend) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req clinic.ForgotPasswordRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	email := normalizeEmail(req.Email)
	b.mu.Lock()
	if acc, ok := b.accountByEmail(email); ok {
		token := uuid.NewString()
		b.resets[token] = resetToken{userID: acc.ID, expires: time.Now().Add(resetTokenTTL)}
		b.logger.Info("password reset requested", "email", email, "reset_token", token)
	}
	b.mu.Unlock()
	writeMessage(w, "If an account exists for that email, a reset link has been sent")
}

// PendingReset returns the newest unexpired reset token issued for email.
func (b *Backend) PendingReset(email string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	acc, ok := b.accountByEmail(normalizeEmail(email))
	if !ok {
		return "", false
	}
	var (
		best    string
		bestExp time.Time
	)
	for tok, rt := range b.resets {
		if rt.userID == acc.ID && rt.expires.After(time.Now()) && rt.expires.After(bestExp) {
			best, bestExp = tok, rt.expires
		}
	}
	return best, best != ""
}

func (b *Backend) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req clinic.ResetPasswordRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	if len(req.Password) < minPasswordLen {
		writeErr(w, badRequest("Password must be at least 6 characters"))
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	rt, ok := b.resets[req.Token]
	if !ok || time.Now().After(rt.expires) {
		writeErr(w, badRequest("Invalid or expired token"))
		return
	}
	acc, ok := b.accounts.get(rt.userID)
	if !ok {
		writeErr(w, badRequest("Invalid or expired token"))
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), b.opts.HashCost)
	if err != nil {
		writeErr(w, err)
		return
	}
	acc.PasswordHash = string(hash)
	b.accounts.put(acc)
	delete(b.resets, req.Token)
	writeMessage(w, "Password has been reset")
}

// googleStart stands in for the OAuth redirect; the flow itself is out of
// reach of a fake.
func (b *Backend) googleStart(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, b.opts.GoogleAuthURL, http.StatusFound)
}
