// Package retry повторяет операции с экспоненциальной задержкой
package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Config параметры повторов
type Config struct {
	// MaxAttempts общее число попыток, включая первую; значения меньше 1 означают одну попытку
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// Jitter добавляет случайное отклонение ±25% к задержке
	Jitter bool
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// Func операция с повтором
type Func func(ctx context.Context) error

// Do выполняет operation, пока она не завершится успешно, попытки не кончатся
// или retryable не отклонит ошибку. retryable может быть nil: тогда повторяется любая ошибка.
func Do(ctx context.Context, config Config, operation Func, retryable func(error) bool) error {
	attempts := config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := operation(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == attempts || (retryable != nil && !retryable(err)) {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(Delay(attempt, config)):
		}
	}

	if attempts == 1 {
		return lastErr
	}
	return fmt.Errorf("operation failed after %d attempts: %w", attempts, lastErr)
}

// Delay задержка перед попыткой attempt+1
func Delay(attempt int, config Config) time.Duration {
	multiplier := config.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	delay := time.Duration(float64(config.InitialDelay) * math.Pow(multiplier, float64(attempt-1)))
	if config.MaxDelay > 0 && delay > config.MaxDelay {
		delay = config.MaxDelay
	}
	if config.Jitter && delay > 0 {
		spread := float64(delay) * 0.25
		delay += time.Duration(spread * (2*rand.Float64() - 1))
	}
	return delay
}
