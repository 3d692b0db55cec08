// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/access"
	"github.com/carterperez-dev/templates/dashboard-backend/internal/config"
	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
)

// TokenLifetime is fixed; there is no refresh flow.
const TokenLifetime = 2 * time.Hour

type SessionToken struct {
	Value     string
	ExpiresAt time.Time
}

type JWTManager struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}

	return &JWTManager{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}, nil
}

// WithClock replaces the time source used for issuing and validating
// tokens.
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	m.now = now
	return m
}

// IssueToken signs {sub, role, iat, nbf, exp} with HS256. The output depends
// only on the identity and the clock reading.
func (m *JWTManager) IssueToken(userID, role string) (SessionToken, error) {
	now := m.now().Truncate(time.Second)
	expiresAt := now.Add(TokenLifetime)

	token, err := jwt.NewBuilder().
		Issuer(m.issuer).
		Audience([]string{m.audience}).
		Subject(userID).
		IssuedAt(now).
		NotBefore(now).
		Expiration(expiresAt).
		Claim("role", role).
		Build()
	if err != nil {
		return SessionToken{}, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.secret))
	if err != nil {
		return SessionToken{}, fmt.Errorf("sign token: %w", err)
	}

	return SessionToken{Value: string(signed), ExpiresAt: expiresAt}, nil
}

func (m *JWTManager) VerifyToken(
	_ context.Context,
	tokenString string,
) (access.Principal, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.secret),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(m.now)),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return access.Principal{}, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return access.Principal{}, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return access.Principal{}, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	var role string
	if err := token.Get("role", &role); err != nil || role == "" {
		return access.Principal{}, fmt.Errorf(
			"verify token: missing role claim: %w",
			core.ErrTokenInvalid,
		)
	}

	return access.Principal{UserID: subject, Role: role}, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, `"exp"`) &&
		(strings.Contains(errStr, "not satisfied") ||
			strings.Contains(errStr, "expired"))
}

var _ access.TokenVerifier = (*JWTManager)(nil)
