// AngelaMos | 2026
// seeder.go

package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
)

const (
	minSessions   = 1
	sessionsRange = 5
	minPoints     = 10
	pointsRange   = 50
)

// RandSource yields integers in [0, n). Implementations used by a shared
// Seeder must be safe for concurrent use.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

type Seeder struct {
	repo    Repository
	loc     *time.Location
	rand    RandSource
	metrics *core.Metrics
}

func NewSeeder(repo Repository, loc *time.Location, metrics *core.Metrics) *Seeder {
	if loc == nil {
		loc = time.Local
	}
	return &Seeder{
		repo:    repo,
		loc:     loc,
		rand:    globalRand{},
		metrics: metrics,
	}
}

func (s *Seeder) WithRand(src RandSource) *Seeder {
	s.rand = src
	return s
}

// EnsureSeeded gives userID one record per day of the trailing window ending
// at ref, unless the window already holds any record for them.
func (s *Seeder) EnsureSeeded(ctx context.Context, userID string, ref time.Time) error {
	days := TrailingWindow(ref, s.loc)
	from, to := days[0], days[len(days)-1]

	existing, err := s.repo.CountInRange(ctx, userID, from, to)
	if err != nil {
		return fmt.Errorf("ensure seeded: %w", err)
	}
	if existing > 0 {
		return nil
	}

	records := make([]Record, 0, len(days))
	for _, day := range days {
		records = append(records, Record{
			UserID:   userID,
			Date:     day,
			Sessions: minSessions + s.rand.IntN(sessionsRange),
			Points:   minPoints + s.rand.IntN(pointsRange),
		})
	}

	if err := s.repo.InsertBatch(ctx, records); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			slog.DebugContext(ctx, "activity already seeded concurrently",
				"user_id", userID,
			)
			return nil
		}
		return fmt.Errorf("ensure seeded: %w", err)
	}

	s.metrics.RecordActivitySeeded(len(records))

	slog.InfoContext(ctx, "activity seeded",
		"user_id", userID,
		"from", from.Format(time.DateOnly),
		"to", to.Format(time.DateOnly),
	)

	return nil
}
