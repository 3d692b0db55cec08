// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/access"
	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
)

const PrincipalKey contextKey = "principal"

// Authenticator resolves the bearer token into an access.Principal. Handlers
// read it back with GetPrincipal and hand it to services explicitly.
func Authenticator(verifier access.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := access.RequireAuthenticated(
				r.Context(),
				verifier,
				ExtractToken(r),
			)
			if err != nil {
				core.JSONError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must be mounted after Authenticator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := access.RequireAdmin(GetPrincipal(r.Context())); err != nil {
			core.JSONError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func GetPrincipal(ctx context.Context) access.Principal {
	if p, ok := ctx.Value(PrincipalKey).(access.Principal); ok {
		return p
	}
	return access.Principal{}
}

func GetUserID(ctx context.Context) string {
	return GetPrincipal(ctx).UserID
}
