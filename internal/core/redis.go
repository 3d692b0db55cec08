// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/config"
)

const (
	redisPoolTimeout     = 30 * time.Second
	redisConnMaxIdleTime = 5 * time.Minute
)

// Redis backs the shared rate-limit counters. Nothing else is stored there.
type Redis struct {
	Client *redis.Client
}

// RedisStatus is the snapshot shown on the admin stats endpoint.
type RedisStatus struct {
	Healthy    bool   `json:"healthy"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	Timeouts   uint32 `json:"timeouts"`
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	r := &Redis{Client: redis.NewClient(opts)}
	if err := r.Ping(ctx); err != nil {
		_ = r.Close() //nolint:errcheck // cleanup on connection failure
		return nil, err
	}

	return r, nil
}

// redisOptions lets the URL carry address, credentials and db; pool sizing
// always comes from config.
func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.PoolTimeout = redisPoolTimeout
	opts.ConnMaxIdleTime = redisConnMaxIdleTime

	return opts, nil
}

func (r *Redis) Close() error {
	if r.Client == nil {
		return nil
	}
	return r.Client.Close()
}

func (r *Redis) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := r.Client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Status never fails: an unreachable server is reported as unhealthy with
// whatever the pool has counted so far.
func (r *Redis) Status(ctx context.Context) RedisStatus {
	if r == nil || r.Client == nil {
		return RedisStatus{}
	}

	pool := r.Client.PoolStats()
	return RedisStatus{
		Healthy:    r.Ping(ctx) == nil,
		TotalConns: pool.TotalConns,
		IdleConns:  pool.IdleConns,
		Timeouts:   pool.Timeouts,
	}
}
