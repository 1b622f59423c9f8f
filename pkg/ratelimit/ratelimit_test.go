package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RRHHPlatform/pkg/redis"
)

func TestLocalPacer_Burst(t *testing.T) {
	p := NewLocalPacer(0.001, 2)

	assert.True(t, p.Allow())
	assert.True(t, p.Allow())
	assert.False(t, p.Allow())
}

func TestLocalPacer_Unlimited(t *testing.T) {
	p := NewLocalPacer(0, 0)
	for i := 0; i < 100; i++ {
		require.True(t, p.Allow())
	}
}

func TestLocalPacer_WaitCanceled(t *testing.T) {
	p := NewLocalPacer(0.001, 1)
	require.True(t, p.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, p.Wait(ctx))
}

func TestMemoryRateLimiter(t *testing.T) {
	now := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	m := NewMemoryRateLimiter()
	m.now = func() time.Time { return now }
	ctx := context.Background()

	exceeded, err := m.CheckRateLimit(ctx, "device:1", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, exceeded)

	exceeded, _ = m.CheckRateLimit(ctx, "device:1", 1, time.Minute)
	assert.True(t, exceeded)

	// Другой ключ считается отдельно
	exceeded, _ = m.CheckRateLimit(ctx, "device:2", 1, time.Minute)
	assert.False(t, exceeded)

	// Новое окно
	now = now.Add(time.Minute)
	exceeded, _ = m.CheckRateLimit(ctx, "device:1", 1, time.Minute)
	assert.False(t, exceeded)

	exceeded, _ = m.CheckRateLimit(ctx, "device:1", 1, time.Minute)
	assert.True(t, exceeded)

	// Release сбрасывает текущее окно
	require.NoError(t, m.Release(ctx, "device:1"))
	exceeded, _ = m.CheckRateLimit(ctx, "device:1", 1, time.Minute)
	assert.False(t, exceeded)
	require.NoError(t, m.Release(ctx, "device:unknown"))
}

// TestRedisRateLimiter проверяет лимитер на локальном Redis
func TestRedisRateLimiter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	config := redis.NewConfig()
	config.MaxRetries = 0

	client, err := redis.Connect(ctx, config)
	if err != nil {
		t.Skipf("Redis недоступен: %v", err)
	}
	defer client.Close()

	limiter := NewRedisRateLimiter(client, "rrhh:test:rate_limit:")
	key := fmt.Sprintf("device:%d", time.Now().UnixNano())
	defer client.Client.Del(ctx, "rrhh:test:rate_limit:"+key)

	for i := 0; i < 2; i++ {
		exceeded, err := limiter.CheckRateLimit(ctx, key, 2, time.Minute)
		require.NoError(t, err)
		assert.False(t, exceeded)
	}

	exceeded, err := limiter.CheckRateLimit(ctx, key, 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, exceeded)

	ttl, err := client.Client.TTL(ctx, "rrhh:test:rate_limit:"+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, limiter.Release(ctx, key))
	exceeded, err = limiter.CheckRateLimit(ctx, key, 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, exceeded)
}
