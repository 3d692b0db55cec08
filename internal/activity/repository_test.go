// AngelaMos | 2026
// repository_test.go

package activity

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
)

// recordingDB captures the statement each repository call sends. Methods the
// repository never uses fall through to the nil embedded interface.
type recordingDB struct {
	core.DBTX
	query  string
	args   []any
	err    error
	sports []SportCount
}

func (d *recordingDB) SelectContext(_ context.Context, dest any, query string, args ...any) error {
	d.query, d.args = query, args
	if d.err != nil {
		return d.err
	}
	if out, ok := dest.(*[]SportCount); ok {
		*out = d.sports
	}
	return nil
}

func (d *recordingDB) GetContext(_ context.Context, _ any, query string, args ...any) error {
	d.query, d.args = query, args
	return d.err
}

func (d *recordingDB) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	d.query, d.args = query, args
	return nil, d.err
}

func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

func TestTopSportsOrdering(t *testing.T) {
	db := &recordingDB{sports: []SportCount{{Sport: "Tennis", Count: 3}}}

	got, err := NewRepository(db).TopSports(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, []SportCount{{Sport: "Tennis", Count: 3}}, got)
	assert.Contains(t, compact(db.query), "GROUP BY sport ORDER BY count DESC, MIN(created_at) ASC, sport ASC LIMIT $1")
	assert.Equal(t, []any{5}, db.args)
}

func TestRangeQueriesUseCivilDates(t *testing.T) {
	from := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	db := &recordingDB{}
	repo := NewRepository(db)

	_, err := repo.ListInRange(context.Background(), "u-1", from, to)
	require.NoError(t, err)
	assert.Contains(t, compact(db.query), "BETWEEN $2::date AND $3::date ORDER BY activity_date ASC")
	assert.Equal(t, []any{"u-1", "2026-03-04", "2026-03-10"}, db.args)

	_, err = repo.CountInRange(context.Background(), "u-1", from, to)
	require.NoError(t, err)
	assert.Equal(t, []any{"u-1", "2026-03-04", "2026-03-10"}, db.args)
}

func TestInsertBatchSingleStatement(t *testing.T) {
	db := &recordingDB{}
	day := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	err := NewRepository(db).InsertBatch(context.Background(), []Record{
		{UserID: "u-1", Date: day, Sessions: 2, Points: 30},
		{UserID: "u-1", Date: day.AddDate(0, 0, 1), Sessions: 4, Points: 11},
	})
	require.NoError(t, err)

	assert.Contains(t, compact(db.query), "VALUES ($1, $2::date, $3, $4), ($5, $6::date, $7, $8)")
	assert.Equal(t, []any{"u-1", "2026-03-09", 2, 30, "u-1", "2026-03-10", 4, 11}, db.args)
}

func TestRepositoryConstraintErrors(t *testing.T) {
	records := []Record{{UserID: "gone", Date: time.Now().UTC()}}

	cases := []struct {
		name string
		code string
		want error
	}{
		{"unique violation", "23505", core.ErrDuplicateKey},
		{"missing owner", "23503", core.ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := &recordingDB{err: &pgconn.PgError{Code: tc.code}}
			err := NewRepository(db).InsertBatch(context.Background(), records)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("interest for missing owner", func(t *testing.T) {
		db := &recordingDB{err: &pgconn.PgError{Code: "23503"}}
		err := NewRepository(db).CreateInterest(context.Background(), &Interest{
			ID: "i-1", UserID: "gone", Sport: "Tennis", Level: LevelBeginner,
		})
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}
