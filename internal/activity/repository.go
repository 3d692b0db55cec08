// AngelaMos | 2026
// repository.go

package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
)

type Repository interface {
	CountInRange(ctx context.Context, userID string, from, to time.Time) (int, error)
	ListInRange(ctx context.Context, userID string, from, to time.Time) ([]Record, error)
	InsertBatch(ctx context.Context, records []Record) error
	CreateInterest(ctx context.Context, interest *Interest) error
	TopSports(ctx context.Context, limit int) ([]SportCount, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Dates cross the driver as YYYY-MM-DD text cast to DATE so the session
// time zone never shifts a civil date.

func (r *repository) CountInRange(
	ctx context.Context,
	userID string,
	from, to time.Time,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM user_activity
		WHERE user_id = $1
		  AND activity_date BETWEEN $2::date AND $3::date`

	var count int
	err := r.db.GetContext(ctx, &count, query,
		userID,
		from.Format(time.DateOnly),
		to.Format(time.DateOnly),
	)
	if err != nil {
		return 0, fmt.Errorf("count activity: %w", err)
	}

	return count, nil
}

func (r *repository) ListInRange(
	ctx context.Context,
	userID string,
	from, to time.Time,
) ([]Record, error) {
	query := `
		SELECT user_id, activity_date, sessions, points
		FROM user_activity
		WHERE user_id = $1
		  AND activity_date BETWEEN $2::date AND $3::date
		ORDER BY activity_date ASC`

	records := []Record{}
	err := r.db.SelectContext(ctx, &records, query,
		userID,
		from.Format(time.DateOnly),
		to.Format(time.DateOnly),
	)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	return records, nil
}

// InsertBatch writes every record in one statement: either all rows land or
// none do. A unique violation on (user_id, activity_date) is reported as
// core.ErrDuplicateKey, a missing owner as core.ErrNotFound.
func (r *repository) InsertBatch(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	const cols = 4
	values := make([]string, 0, len(records))
	args := make([]any, 0, len(records)*cols)
	for i, rec := range records {
		n := i * cols
		values = append(values, fmt.Sprintf(
			"($%d, $%d::date, $%d, $%d)", n+1, n+2, n+3, n+4,
		))
		args = append(args,
			rec.UserID,
			rec.Date.Format(time.DateOnly),
			rec.Sessions,
			rec.Points,
		)
	}

	query := `
		INSERT INTO user_activity (user_id, activity_date, sessions, points)
		VALUES ` + strings.Join(values, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("insert activity: %w", core.ErrDuplicateKey)
		}
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf("insert activity: %w", core.ErrNotFound)
		}
		return fmt.Errorf("insert activity: %w", err)
	}

	return nil
}

func (r *repository) CreateInterest(ctx context.Context, interest *Interest) error {
	query := `
		INSERT INTO user_interests (id, user_id, sport, level)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &interest.CreatedAt, query,
		interest.ID,
		interest.UserID,
		interest.Sport,
		interest.Level,
	)
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf("create interest: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create interest: %w", err)
	}

	return nil
}

// TopSports breaks count ties by the earliest submission of each sport, then
// by name.
func (r *repository) TopSports(ctx context.Context, limit int) ([]SportCount, error) {
	query := `
		SELECT sport, COUNT(*) AS count
		FROM user_interests
		GROUP BY sport
		ORDER BY count DESC, MIN(created_at) ASC, sport ASC
		LIMIT $1`

	counts := []SportCount{}
	if err := r.db.SelectContext(ctx, &counts, query, limit); err != nil {
		return nil, fmt.Errorf("aggregate interests: %w", err)
	}

	return counts, nil
}
