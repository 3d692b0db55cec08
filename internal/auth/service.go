// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/access"
	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
)

// ErrEmailExists is shared by self-registration and admin account creation.
// It matches core.ErrDuplicateKey as well.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = fmt.Errorf("email already exists: %w", core.ErrDuplicateKey)
	ErrAccountDeactivated = errors.New("account is deactivated")
)

type UserInfo struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		name, email, passwordHash, role string,
	) (*UserInfo, error)
}

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
	metrics      *core.Metrics
}

func NewService(
	jwt *JWTManager,
	userProvider UserProvider,
	metrics *core.Metrics,
) *Service {
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
		metrics:      metrics,
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	if err := core.RequireNonBlank(
		core.Field{Name: "name", Value: req.Name},
		core.Field{Name: "email", Value: req.Email},
		core.Field{Name: "password", Value: req.Password},
	); err != nil {
		s.metrics.RecordAuthAttempt("register", "invalid")
		return nil, err
	}

	_, err := s.userProvider.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		s.metrics.RecordAuthAttempt("register", "duplicate")
		return nil, ErrEmailExists
	case !errors.Is(err, core.ErrNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userProvider.Create(
		ctx,
		req.Name,
		req.Email,
		passwordHash,
		access.RoleUser,
	)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			s.metrics.RecordAuthAttempt("register", "duplicate")
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.RecordAuthAttempt("register", "success")
	return s.createAuthResponse(user)
}

// Login reports unknown emails and wrong passwords as the same error. The
// active flag is consulted only once the password has matched.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			s.metrics.RecordAuthAttempt("login", "invalid_credentials")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		s.metrics.RecordAuthAttempt("login", "invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.metrics.RecordAuthAttempt("login", "deactivated")
		return nil, ErrAccountDeactivated
	}

	s.metrics.RecordAuthAttempt("login", "success")
	return s.createAuthResponse(user)
}

func (s *Service) IssueToken(user *UserInfo) (SessionToken, error) {
	return s.jwt.IssueToken(user.ID, user.Role)
}

func (s *Service) VerifyToken(
	ctx context.Context,
	token string,
) (access.Principal, error) {
	return s.jwt.VerifyToken(ctx, token)
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	actor access.Principal,
) (*UserResponse, error) {
	if actor.UserID == "" {
		return nil, fmt.Errorf("get current user: %w", core.ErrUnauthorized)
	}

	user, err := s.userProvider.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) createAuthResponse(user *UserInfo) (*AuthResponse, error) {
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResponse{
		Token:     token.Value,
		TokenType: "Bearer",
		ExpiresAt: token.ExpiresAt,
		User:      toUserResponse(user),
	}, nil
}
