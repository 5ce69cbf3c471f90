package clinic

import (
	"context"
	"fmt"

	"github.com/wolfman30/dental-clinic-client/internal/gateway"
)

// GoogleAuthPath is the backend-hosted start of the Google OAuth flow.
const GoogleAuthPath = "/auth/google"

// AuthService wraps /auth/*.
type AuthService struct {
	r gateway.Requester
}

type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// CompleteProfileRequest fills in the details missing after an OAuth signup.
type CompleteProfileRequest struct {
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Address     string `json:"address,omitempty"`
}

// AuthResponse is returned by signup and login. The session itself travels
// in a cookie; Token is only set by backends that also return it in the body.
type AuthResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (AuthResponse, error) {
	return send[AuthResponse](ctx, s.r, gateway.Post, "/auth/signup", req)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	return send[AuthResponse](ctx, s.r, gateway.Post, "/auth/login", req)
}

func (s *AuthService) Logout(ctx context.Context) (Message, error) {
	return send[Message](ctx, s.r, gateway.Post, "/auth/logout", nil)
}

func (s *AuthService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (Message, error) {
	return send[Message](ctx, s.r, gateway.Post, "/auth/forgot-password", req)
}

func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) (Message, error) {
	return send[Message](ctx, s.r, gateway.Post, "/auth/reset-password", req)
}

func (s *AuthService) CompleteProfile(ctx context.Context, req CompleteProfileRequest) (User, error) {
	return send[User](ctx, s.r, gateway.Put, "/auth/complete-profile", req)
}

// Me returns the user behind the current session.
func (s *AuthService) Me(ctx context.Context) (User, error) {
	return get[User](ctx, s.r, "/auth/me")
}

// GoogleLoginURL is where LoginWithGoogle sends the user.
func (s *AuthService) GoogleLoginURL() string {
	return s.r.URL(GoogleAuthPath)
}

// LoginWithGoogle hands the user over to the backend's OAuth flow. It never
// issues a request itself: the next steps are cross-origin redirects the
// client must not intercept.
func (s *AuthService) LoginWithGoogle(ctx context.Context, nav gateway.Navigator) error {
	if nav == nil {
		return fmt.Errorf("clinic: google login needs a navigator")
	}
	return nav.Navigate(ctx, s.GoogleLoginURL())
}
