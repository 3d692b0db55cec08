// AngelaMos | 2026
// activity_test.go

package activity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/access"
	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
)

type memoryRepo struct {
	mu        sync.Mutex
	records   map[string]Record
	interests   []Interest
	insertErr   error
	interestErr error
	inserts     int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: map[string]Record{}}
}

func recordKey(userID string, day time.Time) string {
	return userID + "|" + day.Format(time.DateOnly)
}

func (m *memoryRepo) CountInRange(
	_ context.Context,
	userID string,
	from, to time.Time,
) (int, error) {
	recs, _ := m.ListInRange(context.Background(), userID, from, to)
	return len(recs), nil
}

func (m *memoryRepo) ListInRange(
	_ context.Context,
	userID string,
	from, to time.Time,
) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Record
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if rec, ok := m.records[recordKey(userID, d)]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memoryRepo) InsertBatch(_ context.Context, records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inserts++
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, rec := range records {
		if _, ok := m.records[recordKey(rec.UserID, rec.Date)]; ok {
			return fmt.Errorf("insert activity: %w", core.ErrDuplicateKey)
		}
	}
	for _, rec := range records {
		m.records[recordKey(rec.UserID, rec.Date)] = rec
	}
	return nil
}

func (m *memoryRepo) CreateInterest(_ context.Context, interest *Interest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.interestErr != nil {
		return m.interestErr
	}
	interest.CreatedAt = time.Now()
	m.interests = append(m.interests, *interest)
	return nil
}

func (m *memoryRepo) TopSports(context.Context, int) ([]SportCount, error) {
	return nil, nil
}

type cycleRand struct {
	mu sync.Mutex
	n  int
}

func (c *cycleRand) IntN(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.n % n
}

type maxRand struct{}

func (maxRand) IntN(n int) int { return n - 1 }

type minRand struct{}

func (minRand) IntN(int) int { return 0 }

var ref = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func TestTrailingWindow(t *testing.T) {
	days := TrailingWindow(ref, time.UTC)

	require.Len(t, days, WindowDays)
	assert.Equal(t, time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), days[6])
	assert.Equal(t, "04 Mar", Label(days[0]))
	assert.Equal(t, "10 Mar", Label(days[6]))
}

func TestTrailingWindowAcrossMonthBoundary(t *testing.T) {
	days := TrailingWindow(time.Date(2026, time.March, 2, 1, 0, 0, 0, time.UTC), time.UTC)

	assert.Equal(t, "24 Feb", Label(days[0]))
	assert.Equal(t, "02 Mar", Label(days[6]))
}

func TestCivilDateUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	late := time.Date(2026, time.March, 10, 20, 0, 0, 0, time.UTC)

	assert.Equal(t,
		time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
		CivilDate(late, tokyo),
	)
	assert.Equal(t,
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		CivilDate(late, time.UTC),
	)
}

func TestEnsureSeededIsIdempotent(t *testing.T) {
	repo := newMemoryRepo()
	seeder := NewSeeder(repo, time.UTC, nil).WithRand(&cycleRand{})
	ctx := context.Background()

	require.NoError(t, seeder.EnsureSeeded(ctx, "u1", ref))
	require.NoError(t, seeder.EnsureSeeded(ctx, "u1", ref))

	days := TrailingWindow(ref, time.UTC)
	recs, err := repo.ListInRange(ctx, "u1", days[0], days[6])
	require.NoError(t, err)

	assert.Len(t, recs, WindowDays)
	assert.Equal(t, 1, repo.inserts)
	for i, rec := range recs {
		assert.Equal(t, days[i], rec.Date)
	}
}

func TestEnsureSeededValueRanges(t *testing.T) {
	cases := []struct {
		name     string
		src      RandSource
		sessions int
		points   int
	}{
		{"lowest", minRand{}, 1, 10},
		{"highest", maxRand{}, 5, 59},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMemoryRepo()
			seeder := NewSeeder(repo, time.UTC, nil).WithRand(tc.src)

			require.NoError(t, seeder.EnsureSeeded(context.Background(), "u1", ref))

			require.Len(t, repo.records, WindowDays)
			for _, rec := range repo.records {
				assert.Equal(t, tc.sessions, rec.Sessions)
				assert.Equal(t, tc.points, rec.Points)
			}
		})
	}
}

func TestEnsureSeededDefaultRandStaysInRange(t *testing.T) {
	repo := newMemoryRepo()
	seeder := NewSeeder(repo, time.UTC, nil)

	require.NoError(t, seeder.EnsureSeeded(context.Background(), "u1", ref))

	for _, rec := range repo.records {
		assert.GreaterOrEqual(t, rec.Sessions, 1)
		assert.LessOrEqual(t, rec.Sessions, 5)
		assert.GreaterOrEqual(t, rec.Points, 10)
		assert.LessOrEqual(t, rec.Points, 59)
	}
}

func TestEnsureSeededSkipsWhenWindowHasAnyRecord(t *testing.T) {
	repo := newMemoryRepo()
	day := CivilDate(ref, time.UTC).AddDate(0, 0, -2)
	repo.records[recordKey("u1", day)] = Record{UserID: "u1", Date: day, Sessions: 1, Points: 10}

	seeder := NewSeeder(repo, time.UTC, nil)
	require.NoError(t, seeder.EnsureSeeded(context.Background(), "u1", ref))

	assert.Len(t, repo.records, 1)
	assert.Zero(t, repo.inserts)
}

func TestEnsureSeededSwallowsDuplicateKey(t *testing.T) {
	repo := newMemoryRepo()
	repo.insertErr = fmt.Errorf("insert activity: %w", core.ErrDuplicateKey)

	seeder := NewSeeder(repo, time.UTC, nil)
	assert.NoError(t, seeder.EnsureSeeded(context.Background(), "u1", ref))
}

func TestEnsureSeededSurfacesOtherFailures(t *testing.T) {
	repo := newMemoryRepo()
	repo.insertErr = errors.New("connection reset")

	seeder := NewSeeder(repo, time.UTC, nil)
	err := seeder.EnsureSeeded(context.Background(), "u1", ref)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestEnsureSeededConcurrentCallers(t *testing.T) {
	repo := newMemoryRepo()
	seeder := NewSeeder(repo, time.UTC, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- seeder.EnsureSeeded(context.Background(), "u1", ref)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, repo.records, WindowDays)
}

func TestAddInterest(t *testing.T) {
	actor := access.Principal{UserID: "u1", Role: access.RoleUser}

	t.Run("defaults level to beginner", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo)

		interest, err := svc.AddInterest(context.Background(), actor, " Tennis ", "")
		require.NoError(t, err)

		assert.Equal(t, "Tennis", interest.Sport)
		assert.Equal(t, LevelBeginner, interest.Level)
		assert.Equal(t, "u1", interest.UserID)
		assert.NotEmpty(t, interest.ID)
		assert.Len(t, repo.interests, 1)
	})

	t.Run("repeat submissions are appended", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo)

		for range 2 {
			_, err := svc.AddInterest(context.Background(), actor, "Golf", LevelAdvanced)
			require.NoError(t, err)
		}
		assert.Len(t, repo.interests, 2)
	})

	t.Run("blank sport", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		_, err := svc.AddInterest(context.Background(), actor, "   ", LevelBeginner)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("unknown level", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		_, err := svc.AddInterest(context.Background(), actor, "Golf", "Expert")
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		_, err := svc.AddInterest(context.Background(), access.Principal{}, "Golf", "")
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})
}
