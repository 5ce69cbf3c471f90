package clinic

import (
	"context"

	"github.com/wolfman30/dental-clinic-client/internal/gateway"
)

// AdminService wraps /admin/*: role and user management.
type AdminService struct {
	r gateway.Requester
}

// CreateUserRequest creates a staff account directly.
type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
	Role      Role   `json:"role"`
}

// RoleUpdate changes a user's role.
type RoleUpdate struct {
	Role Role `json:"role"`
}

func (s *AdminService) Users(ctx context.Context) ([]User, error) {
	return list[User](ctx, s.r, "/admin/users")
}

func (s *AdminService) CreateUser(ctx context.Context, req CreateUserRequest) (User, error) {
	return send[User](ctx, s.r, gateway.Post, "/admin/users", req)
}

func (s *AdminService) ChangeRole(ctx context.Context, userID ID, role Role) (User, error) {
	return send[User](ctx, s.r, gateway.Put, pathf("/admin/users/%s/role", userID), RoleUpdate{Role: role})
}

func (s *AdminService) DeleteUser(ctx context.Context, userID ID) error {
	return remove(ctx, s.r, pathf("/admin/users/%s", userID))
}

func (s *AdminService) Roles(ctx context.Context) ([]Role, error) {
	return list[Role](ctx, s.r, "/admin/roles")
}
