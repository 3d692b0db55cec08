// AngelaMos | 2026
// service.go

package activity

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/access"
	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddInterest records that the caller follows a sport. Submissions are
// appended; the same sport may be recorded more than once.
func (s *Service) AddInterest(
	ctx context.Context,
	actor access.Principal,
	sport, level string,
) (*Interest, error) {
	if actor.UserID == "" {
		return nil, core.UnauthorizedError("")
	}

	sport = strings.TrimSpace(sport)
	if err := core.RequireNonBlank(
		core.Field{Name: "sport", Value: sport},
	); err != nil {
		return nil, err
	}

	if level == "" {
		level = LevelBeginner
	}
	if err := core.OneOf(
		"level", level,
		LevelBeginner, LevelIntermediate, LevelAdvanced,
	); err != nil {
		return nil, err
	}

	interest := &Interest{
		ID:     uuid.New().String(),
		UserID: actor.UserID,
		Sport:  sport,
		Level:  level,
	}

	if err := s.repo.CreateInterest(ctx, interest); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "interest recorded",
		"user_id", actor.UserID,
		"sport", sport,
		"level", level,
	)

	return interest, nil
}
