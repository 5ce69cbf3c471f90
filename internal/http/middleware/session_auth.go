package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/session"
)

type contextKey string

const sessionClaimsKey contextKey = "sessionClaims"

// SignSessionToken issues the HMAC-signed token stored in the session cookie.
func SignSessionToken(secret string, user clinic.User, now time.Time, ttl time.Duration) (string, error) {
	claims := session.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// SessionJWT requires a valid session token, read from the "token" cookie or
// an Authorization bearer header. Anything else is answered with
// 401 {"error":"Unauthorized"}.
func SessionJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if secret == "" || raw == "" {
				WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			claims := session.Claims{}
			token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), sessionClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if c, err := r.Cookie(session.TokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// RequireRole lets through only sessions holding one of roles. It must run
// after SessionJWT.
func RequireRole(roles ...clinic.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := SessionClaimsFromContext(r.Context())
			if !ok {
				WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			WriteError(w, http.StatusForbidden, "Forbidden")
		})
	}
}

// SessionClaimsFromContext returns the session claims if present.
func SessionClaimsFromContext(ctx context.Context) (session.Claims, bool) {
	claims, ok := ctx.Value(sessionClaimsKey).(session.Claims)
	return claims, ok
}
