// AngelaMos | 2026
// service.go

package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/activity"
	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
)

const (
	TopSportsLimit = 5
	TotalSales     = 250

	tracerName = "dashboard"
)

var salesByProduct = []LabeledValue{
	{Label: "CRM Licenses", Value: 120},
	{Label: "Add-ons", Value: 80},
	{Label: "Support", Value: 50},
}

type UserStats interface {
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
	CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

type ActivityStore interface {
	ListInRange(
		ctx context.Context,
		userID string,
		from, to time.Time,
	) ([]activity.Record, error)
	TopSports(ctx context.Context, limit int) ([]activity.SportCount, error)
}

type Seeder interface {
	EnsureSeeded(ctx context.Context, userID string, ref time.Time) error
}

type Service struct {
	users    UserStats
	activity ActivityStore
	seeder   Seeder
	loc      *time.Location
	now      func() time.Time
	metrics  *core.Metrics
	tracer   trace.Tracer
}

func NewService(
	users UserStats,
	store ActivityStore,
	seeder Seeder,
	loc *time.Location,
	metrics *core.Metrics,
) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		users:    users,
		activity: store,
		seeder:   seeder,
		loc:      loc,
		now:      time.Now,
		metrics:  metrics,
		tracer:   core.Tracer(tracerName),
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ComputeAdminMetrics summarises all users over the trailing window ending
// today. A failed interest aggregation yields an empty sports list instead
// of an error.
func (s *Service) ComputeAdminMetrics(ctx context.Context) (*AdminMetrics, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.ComputeAdminMetrics")
	defer span.End()

	days := activity.TrailingWindow(s.now(), s.loc)

	var (
		total, active int
		signups       []time.Time
		sports        []activity.SportCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.users.Count(gctx)
		total = n
		return err
	})
	g.Go(func() error {
		n, err := s.users.CountActive(gctx)
		active = n
		return err
	})
	g.Go(func() error {
		stamps, err := s.users.CreatedSince(gctx, activity.StartOfDay(days[0], s.loc))
		signups = stamps
		return err
	})
	g.Go(func() error {
		sports = s.topSports(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("compute admin metrics: %w", err)
	}

	series := s.bucketSignups(days, signups)

	var today int
	if len(series) > 0 {
		today = series[len(series)-1].Value
	}

	span.SetAttributes(
		attribute.Int("dashboard.total_users", total),
		attribute.Int("dashboard.sports", len(sports)),
	)

	return &AdminMetrics{
		Summary: AdminSummary{
			TotalUsers:      total,
			ActiveUsers:     active,
			TotalSales:      TotalSales,
			NewSignupsToday: today,
		},
		Charts: AdminCharts{
			Last7DaysSignups: series,
			SalesByProduct:   slices.Clone(salesByProduct),
			SportsInterests:  sports,
		},
	}, nil
}

func (s *Service) topSports(ctx context.Context) []activity.SportCount {
	sports, err := s.activity.TopSports(ctx, TopSportsLimit)
	if err != nil {
		slog.WarnContext(ctx, "sports interest aggregation failed",
			"error", err,
		)
		core.SetSpanError(ctx, err)
		s.metrics.RecordDegraded("sports_interests")
		return []activity.SportCount{}
	}

	slices.SortStableFunc(sports, func(a, b activity.SportCount) int {
		return b.Count - a.Count
	})
	if len(sports) > TopSportsLimit {
		sports = sports[:TopSportsLimit]
	}

	return sports
}

// bucketSignups counts timestamps per civil day of the window. Stamps are
// compared by calendar date in s.loc, not by 24h offsets from now.
func (s *Service) bucketSignups(days []time.Time, stamps []time.Time) []LabeledValue {
	index := make(map[time.Time]int, len(days))
	series := make([]LabeledValue, len(days))
	for i, day := range days {
		index[day] = i
		series[i] = LabeledValue{Label: activity.Label(day)}
	}

	for _, ts := range stamps {
		if i, ok := index[activity.CivilDate(ts, s.loc)]; ok {
			series[i].Value++
		}
	}

	return series
}

// ComputeUserMetrics seeds the caller's window if it is empty, then reports
// whatever records the window holds.
func (s *Service) ComputeUserMetrics(
	ctx context.Context,
	userID string,
) (*UserMetrics, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.ComputeUserMetrics",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	now := s.now()
	if err := s.seeder.EnsureSeeded(ctx, userID, now); err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("compute user metrics: %w", err)
	}

	days := activity.TrailingWindow(now, s.loc)
	records, err := s.activity.ListInRange(ctx, userID, days[0], days[len(days)-1])
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("compute user metrics: %w", err)
	}

	out := &UserMetrics{
		Charts: UserCharts{
			SessionsLast7Days: make([]LabeledValue, 0, len(records)),
			PointsLast7Days:   make([]LabeledValue, 0, len(records)),
		},
	}

	for _, rec := range records {
		label := activity.Label(rec.Date)
		out.Summary.TotalSessions += rec.Sessions
		out.Summary.TotalPoints += rec.Points
		out.Charts.SessionsLast7Days = append(out.Charts.SessionsLast7Days,
			LabeledValue{Label: label, Value: rec.Sessions})
		out.Charts.PointsLast7Days = append(out.Charts.PointsLast7Days,
			LabeledValue{Label: label, Value: rec.Points})
	}
	out.Summary.DaysTracked = len(records)

	return out, nil
}
