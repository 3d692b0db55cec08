// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	ToggleActive(ctx context.Context, id string) (*User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
	CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `id, name, email, password_hash, role, is_active, created_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &user.CreatedAt, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// GetByEmail matches the address exactly as stored.
func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, name, email, role, is_active, created_at
		FROM users
		ORDER BY created_at DESC`

	users := []User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// ToggleActive flips the flag and returns the updated row in one statement.
func (r *repository) ToggleActive(ctx context.Context, id string) (*User, error) {
	query := `
		UPDATE users
		SET is_active = NOT is_active
		WHERE id = $1
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("toggle active: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle active: %w", err)
	}

	return &user, nil
}

// Delete removes the row if present. Missing rows are not an error.
func (r *repository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

func (r *repository) CountActive(ctx context.Context) (int, error) {
	var active int
	query := `SELECT COUNT(*) FROM users WHERE is_active`
	if err := r.db.GetContext(ctx, &active, query); err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return active, nil
}

func (r *repository) CreatedSince(
	ctx context.Context,
	since time.Time,
) ([]time.Time, error) {
	query := `
		SELECT created_at
		FROM users
		WHERE created_at >= $1
		ORDER BY created_at ASC`

	stamps := []time.Time{}
	if err := r.db.SelectContext(ctx, &stamps, query, since); err != nil {
		return nil, fmt.Errorf("list signup times: %w", err)
	}

	return stamps, nil
}
