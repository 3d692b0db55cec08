// AngelaMos | 2026
// guard.go

// Package access holds the two gating predicates every protected operation
// passes through: an authenticated principal first, then the admin role.
package access

import (
	"context"
	"errors"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the caller resolved from a session token. It is passed
// explicitly into gated service calls.
type Principal struct {
	UserID string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (Principal, error)
}

func RequireAuthenticated(
	ctx context.Context,
	verifier TokenVerifier,
	token string,
) (Principal, error) {
	if token == "" {
		return Principal{}, core.UnauthorizedError("missing authorization token")
	}

	p, err := verifier.VerifyToken(ctx, token)
	if err != nil {
		if core.IsAppError(err) {
			return Principal{}, err
		}
		if errors.Is(err, core.ErrTokenExpired) {
			return Principal{}, core.TokenExpiredError()
		}
		return Principal{}, core.TokenInvalidError()
	}

	if p.UserID == "" {
		return Principal{}, core.TokenInvalidError()
	}

	return p, nil
}

func RequireAdmin(p Principal) error {
	if p.UserID == "" {
		return core.UnauthorizedError("")
	}
	if !p.IsAdmin() {
		return core.ForbiddenError("admin access required")
	}
	return nil
}
