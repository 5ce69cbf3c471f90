package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/gateway"
)

// TokenCookie is the cookie the backend stores its session token in.
const TokenCookie = "token"

// ErrNoToken is returned when a session holds no token to decode.
var ErrNoToken = errors.New("session: no token")

// Claims is the payload of a backend session token.
type Claims struct {
	UserID clinic.ID   `json:"userId,omitempty"`
	Email  string      `json:"email,omitempty"`
	Role   clinic.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Identity is who a session belongs to, as far as the client can tell
// without contacting the backend.
type Identity struct {
	UserID    clinic.ID
	Email     string
	Role      clinic.Role
	ExpiresAt time.Time
}

// Expired reports whether the token carried an expiry that has passed.
func (i Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// DecodeIdentity reads the claims of the session token without verifying the
// signature; the backend remains the authority. The bearer token is preferred
// over the token cookie.
func DecodeIdentity(s gateway.Session) (Identity, error) {
	raw := s.Token
	if raw == "" {
		raw, _ = s.Cookie(TokenCookie)
	}
	if raw == "" {
		return Identity{}, ErrNoToken
	}
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return Identity{}, fmt.Errorf("session: decode token: %w", err)
	}
	id := Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
	if id.UserID == "" {
		id.UserID = clinic.ID(claims.Subject)
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}
