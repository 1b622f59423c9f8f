package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"RRHHPlatform/pkg/redis"
)

// Pacer выдерживает темп последовательных операций
type Pacer interface {
	Wait(ctx context.Context) error
}

// LocalPacer token bucket в памяти процесса
type LocalPacer struct {
	limiter *rate.Limiter
}

// NewLocalPacer создает token bucket: perSecond операций в секунду с запасом burst.
// perSecond <= 0 снимает ограничение.
func NewLocalPacer(perSecond float64, burst int) *LocalPacer {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &LocalPacer{limiter: rate.NewLimiter(limit, burst)}
}

// Wait блокируется до появления токена или отмены контекста
func (p *LocalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Allow забирает токен без ожидания
func (p *LocalPacer) Allow() bool {
	return p.limiter.Allow()
}

// RateLimiter интерфейс для ограничения частоты запросов
type RateLimiter interface {
	// CheckRateLimit проверяет лимит для заданного ключа
	// Возвращает true, если лимит превышен
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	// Release сбрасывает окно ключа, следующая проверка начинает его заново
	Release(ctx context.Context, key string) error
}

// RedisRateLimiter фиксированное окно в Redis, общее для нескольких процессов
type RedisRateLimiter struct {
	client *redis.Client
	prefix string
}

// NewRedisRateLimiter создает новый экземпляр RedisRateLimiter
func NewRedisRateLimiter(client *redis.Client, prefix string) *RedisRateLimiter {
	if prefix == "" {
		prefix = "rrhh:rate_limit:"
	}
	return &RedisRateLimiter{client: client, prefix: prefix}
}

// CheckRateLimit увеличивает счетчик окна и сообщает, превышен ли лимит.
// Срок жизни ставится при первом увеличении, поэтому окно отсчитывается
// от первой операции.
func (r *RedisRateLimiter) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := r.prefix + key

	count, err := r.client.Client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := r.client.Client.Expire(ctx, redisKey, window).Err(); err != nil {
			return true, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count > int64(limit), nil
}

// Release удаляет счетчик окна
func (r *RedisRateLimiter) Release(ctx context.Context, key string) error {
	if err := r.client.Client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release rate limit window: %w", err)
	}
	return nil
}

// MemoryRateLimiter фиксированное окно в памяти процесса
type MemoryRateLimiter struct {
	mu      sync.Mutex
	now     func() time.Time
	windows map[string]*window
}

type window struct {
	start time.Time
	count int
}

// NewMemoryRateLimiter создает лимитер окна в памяти
func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// CheckRateLimit реализует RateLimiter
func (m *MemoryRateLimiter) CheckRateLimit(_ context.Context, key string, limit int, d time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[key]
	if !ok || now.Sub(w.start) >= d {
		w = &window{start: now}
		m.windows[key] = w
	}
	w.count++

	return w.count > limit, nil
}

// Release реализует RateLimiter
func (m *MemoryRateLimiter) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.windows, key)
	return nil
}
