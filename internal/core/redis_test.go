// AngelaMos | 2026
// redis_test.go

package core

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/config"
)

func TestRedisOptions(t *testing.T) {
	opts, err := redisOptions(config.RedisConfig{
		URL:          "redis://:secret@cache.internal:6380/2",
		PoolSize:     7,
		MinIdleConns: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 7, opts.PoolSize)
	assert.Equal(t, 3, opts.MinIdleConns)
	assert.Equal(t, redisPoolTimeout, opts.PoolTimeout)

	_, err = redisOptions(config.RedisConfig{URL: "http://not-redis"})
	assert.Error(t, err)
}

func TestRedisStatusUnreachable(t *testing.T) {
	r := &Redis{Client: redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})}
	t.Cleanup(func() { _ = r.Close() })

	status := r.Status(context.Background())
	assert.False(t, status.Healthy)

	var missing *Redis
	assert.Equal(t, RedisStatus{}, missing.Status(context.Background()))
}
