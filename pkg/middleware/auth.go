package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pehnava/pehnava/pkg/auth"
	"github.com/pehnava/pehnava/pkg/response"
)

type principalKey struct{}

// Principal is the authenticated caller extracted from the bearer token.
type Principal struct {
	UserID string
	Role   string
}

// UserIDFromCtx returns the authenticated caller's ID, if any.
func UserIDFromCtx(r *http.Request) (string, bool) {
	p, ok := r.Context().Value(principalKey{}).(Principal)
	return p.UserID, ok
}

// RoleFromCtx returns the authenticated caller's role, if any.
func RoleFromCtx(r *http.Request) (string, bool) {
	p, ok := r.Context().Value(principalKey{}).(Principal)
	return p.Role, ok
}

func bearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func withPrincipal(r *http.Request, c *auth.Claims) *http.Request {
	p := Principal{UserID: c.UserID, Role: c.Role}
	return r.WithContext(context.WithValue(r.Context(), principalKey{}, p))
}

// Auth requires a valid bearer token and stores the principal in the
// request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, withPrincipal(r, claims))
	})
}

// OptionalAuth attaches the principal when a valid token is present but
// lets anonymous requests through. Used by the public try-on logger,
// where events from logged-in shoppers carry their identity and the rest
// stay anonymous.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if claims, err := auth.ValidateToken(token); err == nil {
				r = withPrincipal(r, claims)
			}
		}
		next.ServeHTTP(w, r)
	})
}
