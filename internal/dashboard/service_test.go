// AngelaMos | 2026
// service_test.go

package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/activity"
)

type stubUsers struct {
	total, active int
	created       []time.Time
	err           error
}

func (s *stubUsers) Count(context.Context) (int, error) {
	return s.total, s.err
}

func (s *stubUsers) CountActive(context.Context) (int, error) {
	return s.active, nil
}

func (s *stubUsers) CreatedSince(_ context.Context, since time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, ts := range s.created {
		if !ts.Before(since) {
			out = append(out, ts)
		}
	}
	return out, nil
}

type stubActivity struct {
	records   []activity.Record
	sports    []activity.SportCount
	sportsErr error
	lastFrom  time.Time
	lastTo    time.Time
}

func (s *stubActivity) ListInRange(
	_ context.Context,
	_ string,
	from, to time.Time,
) ([]activity.Record, error) {
	s.lastFrom, s.lastTo = from, to
	return s.records, nil
}

func (s *stubActivity) TopSports(_ context.Context, limit int) ([]activity.SportCount, error) {
	if s.sportsErr != nil {
		return nil, s.sportsErr
	}
	if len(s.sports) > limit {
		return s.sports[:limit], nil
	}
	return s.sports, nil
}

type stubSeeder struct {
	calls []string
	err   error
}

func (s *stubSeeder) EnsureSeeded(_ context.Context, userID string, _ time.Time) error {
	s.calls = append(s.calls, userID)
	return s.err
}

var now = time.Date(2026, time.June, 15, 14, 0, 0, 0, time.UTC)

func daysAgo(n int, hour int) time.Time {
	d := now.AddDate(0, 0, -n)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

func newTestService(users *stubUsers, store *stubActivity, seeder *stubSeeder) *Service {
	return NewService(users, store, seeder, time.UTC, nil).
		WithClock(func() time.Time { return now })
}

func values(series []LabeledValue) []int {
	out := make([]int, len(series))
	for i, v := range series {
		out[i] = v.Value
	}
	return out
}

func TestAdminMetricsSignupBuckets(t *testing.T) {
	users := &stubUsers{
		total:  5,
		active: 4,
		created: []time.Time{
			daysAgo(30, 10),
			daysAgo(6, 9),
			daysAgo(3, 1),
			daysAgo(3, 23),
			daysAgo(0, 8),
		},
	}
	svc := newTestService(users, &stubActivity{}, &stubSeeder{})

	got, err := svc.ComputeAdminMetrics(context.Background())
	require.NoError(t, err)

	series := got.Charts.Last7DaysSignups
	require.Len(t, series, 7)
	assert.Equal(t, []int{1, 0, 0, 2, 0, 0, 1}, values(series))
	assert.Equal(t, "09 Jun", series[0].Label)
	assert.Equal(t, "15 Jun", series[6].Label)

	assert.Equal(t, 5, got.Summary.TotalUsers)
	assert.Equal(t, 4, got.Summary.ActiveUsers)
	assert.Equal(t, 1, got.Summary.NewSignupsToday)
}

func TestAdminMetricsUsesCalendarDaysNotRollingHours(t *testing.T) {
	earlyMorning := time.Date(2026, time.June, 15, 0, 5, 0, 0, time.UTC)
	users := &stubUsers{
		created: []time.Time{
			time.Date(2026, time.June, 14, 23, 59, 0, 0, time.UTC),
			time.Date(2026, time.June, 15, 0, 1, 0, 0, time.UTC),
		},
	}
	svc := NewService(users, &stubActivity{}, &stubSeeder{}, time.UTC, nil).
		WithClock(func() time.Time { return earlyMorning })

	got, err := svc.ComputeAdminMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 1}, values(got.Charts.Last7DaysSignups))
	assert.Equal(t, 1, got.Summary.NewSignupsToday)
}

func TestAdminMetricsRespectsLocation(t *testing.T) {
	east := time.FixedZone("UTC+10", 10*60*60)
	users := &stubUsers{
		created: []time.Time{
			time.Date(2026, time.June, 15, 15, 0, 0, 0, time.UTC),
		},
	}
	svc := NewService(users, &stubActivity{}, &stubSeeder{}, east, nil).
		WithClock(func() time.Time {
			return time.Date(2026, time.June, 15, 20, 0, 0, 0, time.UTC)
		})

	got, err := svc.ComputeAdminMetrics(context.Background())
	require.NoError(t, err)

	series := got.Charts.Last7DaysSignups
	assert.Equal(t, "16 Jun", series[6].Label)
	assert.Equal(t, 1, series[6].Value)
}

func TestAdminMetricsFixedSales(t *testing.T) {
	svc := newTestService(&stubUsers{}, &stubActivity{}, &stubSeeder{})

	got, err := svc.ComputeAdminMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 250, got.Summary.TotalSales)
	assert.Equal(t, []LabeledValue{
		{Label: "CRM Licenses", Value: 120},
		{Label: "Add-ons", Value: 80},
		{Label: "Support", Value: 50},
	}, got.Charts.SalesByProduct)
}

func TestAdminMetricsTopSports(t *testing.T) {
	store := &stubActivity{
		sports: []activity.SportCount{
			{Sport: "Tennis", Count: 3},
			{Sport: "Golf", Count: 9},
			{Sport: "Chess", Count: 3},
			{Sport: "Rugby", Count: 5},
			{Sport: "Polo", Count: 1},
			{Sport: "Darts", Count: 1},
		},
	}
	svc := newTestService(&stubUsers{}, store, &stubSeeder{})

	got, err := svc.ComputeAdminMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []activity.SportCount{
		{Sport: "Golf", Count: 9},
		{Sport: "Rugby", Count: 5},
		{Sport: "Tennis", Count: 3},
		{Sport: "Chess", Count: 3},
		{Sport: "Polo", Count: 1},
	}, got.Charts.SportsInterests)
}

func TestAdminMetricsDegradesWhenSportsFail(t *testing.T) {
	users := &stubUsers{total: 2, active: 1, created: []time.Time{daysAgo(0, 9)}}
	store := &stubActivity{sportsErr: errors.New("aggregate timed out")}
	svc := newTestService(users, store, &stubSeeder{})

	got, err := svc.ComputeAdminMetrics(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, got.Charts.SportsInterests)
	assert.Empty(t, got.Charts.SportsInterests)
	assert.Equal(t, 2, got.Summary.TotalUsers)
	assert.Equal(t, 1, got.Summary.NewSignupsToday)
}

func TestAdminMetricsFailsOnCountError(t *testing.T) {
	users := &stubUsers{err: errors.New("db down")}
	svc := newTestService(users, &stubActivity{}, &stubSeeder{})

	_, err := svc.ComputeAdminMetrics(context.Background())
	assert.Error(t, err)
}

func TestUserMetrics(t *testing.T) {
	store := &stubActivity{
		records: []activity.Record{
			{UserID: "u1", Date: activity.CivilDate(daysAgo(2, 0), time.UTC), Sessions: 2, Points: 20},
			{UserID: "u1", Date: activity.CivilDate(daysAgo(1, 0), time.UTC), Sessions: 3, Points: 15},
			{UserID: "u1", Date: activity.CivilDate(daysAgo(0, 0), time.UTC), Sessions: 1, Points: 40},
		},
	}
	seeder := &stubSeeder{}
	svc := newTestService(&stubUsers{}, store, seeder)

	got, err := svc.ComputeUserMetrics(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, []string{"u1"}, seeder.calls)
	assert.Equal(t, 6, got.Summary.TotalSessions)
	assert.Equal(t, 75, got.Summary.TotalPoints)
	assert.Equal(t, 3, got.Summary.DaysTracked)

	assert.Equal(t, []LabeledValue{
		{Label: "13 Jun", Value: 2},
		{Label: "14 Jun", Value: 3},
		{Label: "15 Jun", Value: 1},
	}, got.Charts.SessionsLast7Days)
	assert.Equal(t, []int{20, 15, 40}, values(got.Charts.PointsLast7Days))

	assert.Equal(t, time.Date(2026, time.June, 9, 0, 0, 0, 0, time.UTC), store.lastFrom)
	assert.Equal(t, time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC), store.lastTo)
}

func TestUserMetricsWithFreshSeeder(t *testing.T) {
	repo := &seededStore{}
	seeder := activity.NewSeeder(repo, time.UTC, nil)
	svc := NewService(&stubUsers{}, repo, seeder, time.UTC, nil).
		WithClock(func() time.Time { return now })

	first, err := svc.ComputeUserMetrics(context.Background(), "u1")
	require.NoError(t, err)
	second, err := svc.ComputeUserMetrics(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 7, first.Summary.DaysTracked)
	assert.Equal(t, first, second)
	assert.Len(t, repo.records, 7)
}

func TestUserMetricsSeedFailure(t *testing.T) {
	svc := newTestService(&stubUsers{}, &stubActivity{}, &stubSeeder{err: errors.New("insert failed")})

	_, err := svc.ComputeUserMetrics(context.Background(), "u1")
	assert.Error(t, err)
}

// seededStore backs both the seeder and the aggregator.
type seededStore struct {
	records []activity.Record
}

func (s *seededStore) CountInRange(_ context.Context, userID string, from, to time.Time) (int, error) {
	recs, _ := s.ListInRange(context.Background(), userID, from, to)
	return len(recs), nil
}

func (s *seededStore) ListInRange(_ context.Context, userID string, from, to time.Time) ([]activity.Record, error) {
	var out []activity.Record
	for _, r := range s.records {
		if r.UserID == userID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *seededStore) InsertBatch(_ context.Context, records []activity.Record) error {
	s.records = append(s.records, records...)
	return nil
}

func (s *seededStore) CreateInterest(context.Context, *activity.Interest) error {
	return nil
}

func (s *seededStore) TopSports(context.Context, int) ([]activity.SportCount, error) {
	return nil, nil
}
