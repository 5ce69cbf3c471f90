package fakebackend

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/http/middleware"
)

func (b *Backend) mountAdmin(r chi.Router) {
	r.Get("/users", b.listUsers)
	r.Post("/users", b.createUser)
	r.Put("/users/{id}/role", b.changeRole)
	r.Delete("/users/{id}", b.deleteUser)
	r.Get("/roles", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []clinic.Role{clinic.RolePatient, clinic.RoleDoctor, clinic.RoleReceptionist, clinic.RoleAdmin})
	})
}

func (b *Backend) listUsers(w http.ResponseWriter, r *http.Request) {
	b.mu.RLock()
	users := make([]clinic.User, 0, len(b.accounts.rows))
	for _, a := range b.accounts.rows {
		users = append(users, a.User)
	}
	b.mu.RUnlock()
	writeJSON(w, http.StatusOK, users)
}

func (b *Backend) createUser(w http.ResponseWriter, r *http.Request) {
	var req clinic.CreateUserRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	role, err := clinic.ParseRole(string(req.Role))
	if err != nil {
		writeErr(w, badRequest("Invalid role"))
		return
	}

	b.mu.Lock()
	acc, err := b.createAccount(clinic.User{
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Email:             req.Email,
		Phone:             strings.TrimSpace(req.Phone),
		Role:              role,
		IsProfileComplete: true,
	}, req.Password)
	b.mu.Unlock()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, acc.User)
}

func (b *Backend) changeRole(w http.ResponseWriter, r *http.Request) {
	id := clinic.ID(chi.URLParam(r, "id"))
	var req clinic.RoleUpdate
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	role, err := clinic.ParseRole(string(req.Role))
	if err != nil {
		writeErr(w, badRequest("Invalid role"))
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts.get(id)
	if !ok {
		writeErr(w, notFound(b.accounts.notFound()))
		return
	}
	acc.Role = role
	b.accounts.put(acc)
	b.ensureProfile(acc.User)
	writeJSON(w, http.StatusOK, acc.User)
}

func (b *Backend) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := clinic.ID(chi.URLParam(r, "id"))
	if claims, ok := middleware.SessionClaimsFromContext(r.Context()); ok && claims.UserID == id {
		writeErr(w, badRequest("You cannot delete your own account"))
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.accounts.delete(id) {
		writeErr(w, notFound(b.accounts.notFound()))
		return
	}
	writeMessage(w, "User deleted")
}
