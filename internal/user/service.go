// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/access"
	"github.com/carterperez-dev/templates/dashboard-backend/internal/auth"
	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	if !isUUID(id) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// Create persists an already-hashed identity. Callers decide the role.
func (s *Service) Create(
	ctx context.Context,
	name, email, passwordHash, role string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// CreateUser is the admin path: unlike self-registration it may grant the
// admin role.
func (s *Service) CreateUser(
	ctx context.Context,
	actor access.Principal,
	req CreateUserRequest,
) (*User, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	if err := core.RequireNonBlank(
		core.Field{Name: "name", Value: req.Name},
		core.Field{Name: "email", Value: req.Email},
		core.Field{Name: "password", Value: req.Password},
	); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = RoleUser
	}
	if err := core.OneOf("role", role, RoleUser, RoleAdmin); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, auth.ErrEmailExists
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, auth.ErrEmailExists
		}
		return nil, err
	}

	slog.InfoContext(ctx, "user created by admin",
		"user_id", user.ID,
		"role", user.Role,
		"admin_id", actor.UserID,
	)

	return user, nil
}

// EnsureAdmin creates the bootstrap admin account unless the email is
// already taken. The existing account is left untouched.
func (s *Service) EnsureAdmin(
	ctx context.Context,
	name, email, password string,
) (bool, error) {
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return false, err
	}

	hash, err := core.HashPassword(password)
	if err != nil {
		return false, err
	}

	_, err = s.Create(ctx, name, email, hash, RoleAdmin)
	if errors.Is(err, core.ErrDuplicateKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	actor access.Principal,
) ([]User, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	return s.repo.List(ctx)
}

func (s *Service) ToggleActive(
	ctx context.Context,
	actor access.Principal,
	id string,
) (*User, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	if !isUUID(id) {
		return nil, fmt.Errorf("toggle active: %w", core.ErrNotFound)
	}

	user, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user active flag toggled",
		"user_id", user.ID,
		"is_active", user.IsActive,
		"admin_id", actor.UserID,
	)

	return user, nil
}

// DeleteUser hard-deletes by id. Unknown and malformed ids succeed as
// no-ops.
func (s *Service) DeleteUser(
	ctx context.Context,
	actor access.Principal,
	id string,
) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}

	if !isUUID(id) {
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "user deleted",
		"user_id", id,
		"admin_id", actor.UserID,
	)

	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) CountActive(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx)
}

func (s *Service) CreatedSince(
	ctx context.Context,
	since time.Time,
) ([]time.Time, error) {
	return s.repo.CreatedSince(ctx, since)
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
