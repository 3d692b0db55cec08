// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
)

type UserCounter interface {
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}

type RedisReporter interface {
	Status(ctx context.Context) core.RedisStatus
}

type HandlerConfig struct {
	Users     UserCounter
	DBStats   func() sql.DBStats
	DBPing    func(ctx context.Context) error
	Redis     RedisReporter
	StartedAt time.Time
}

type Handler struct {
	cfg HandlerConfig
}

func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.StartedAt.IsZero() {
		cfg.StartedAt = time.Now()
	}
	return &Handler{cfg: cfg}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/stats", h.GetSystemStats)
	})
}

// GetSystemStats reports account totals next to backing-service health.
// Ping failures mark a dependency unhealthy; a failed user count is a 500.
func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.collect(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) collect(ctx context.Context) (*SystemStatsResponse, error) {
	resp := &SystemStatsResponse{
		Uptime:  time.Since(h.cfg.StartedAt).Truncate(time.Second).String(),
		Runtime: runtimeStats(),
	}

	g, gctx := errgroup.WithContext(ctx)

	if h.cfg.Users != nil {
		g.Go(func() error {
			n, err := h.cfg.Users.Count(gctx)
			resp.Users.Total = n
			return err
		})
		g.Go(func() error {
			n, err := h.cfg.Users.CountActive(gctx)
			resp.Users.Active = n
			return err
		})
	}

	g.Go(func() error {
		resp.Database = DatabaseStatus{Healthy: ping(gctx, h.cfg.DBPing)}
		if h.cfg.DBStats != nil {
			s := h.cfg.DBStats()
			resp.Database.OpenConnections = s.OpenConnections
			resp.Database.InUse = s.InUse
			resp.Database.Idle = s.Idle
			resp.Database.WaitCount = s.WaitCount
		}
		return nil
	})

	if h.cfg.Redis != nil {
		g.Go(func() error {
			resp.Redis = h.cfg.Redis.Status(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resp, nil
}

func ping(ctx context.Context, fn func(context.Context) error) bool {
	if fn == nil {
		return false
	}
	return fn(ctx) == nil
}

func runtimeStats() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		MemAlloc:     mem.Alloc,
		NumGC:        mem.NumGC,
	}
}

type SystemStatsResponse struct {
	Uptime   string           `json:"uptime"`
	Users    UserTotals       `json:"users"`
	Database DatabaseStatus   `json:"database"`
	Redis    core.RedisStatus `json:"redis"`
	Runtime  RuntimeStats     `json:"runtime"`
}

type UserTotals struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type DatabaseStatus struct {
	Healthy         bool  `json:"healthy"`
	OpenConnections int   `json:"open_connections"`
	InUse           int   `json:"in_use"`
	Idle            int   `json:"idle"`
	WaitCount       int64 `json:"wait_count"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
