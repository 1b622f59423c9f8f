package redis

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"RRHHPlatform/pkg/retry"
)

// Nil возвращается, когда ключ отсутствует
const Nil = redis.Nil

// Client представляет подключение к Redis
type Client struct {
	Client *redis.Client
}

// Config представляет конфигурацию Redis
type Config struct {
	Addr     string
	Password string
	DB       int
	// Connection pool settings
	PoolSize    int
	MinIdleConn int
	// Retry settings
	MaxRetries    int
	RetryInterval time.Duration
	// Health check
	HealthCheck time.Duration
}

// NewConfig создает конфигурацию по умолчанию
func NewConfig() *Config {
	return &Config{
		Addr:          "localhost:6379",
		Password:      "",
		DB:            0,
		PoolSize:      4,
		MinIdleConn:   1,
		MaxRetries:    2,
		RetryInterval: 500 * time.Millisecond,
		HealthCheck:   30 * time.Second,
	}
}

// GetConfig возвращает конфигурацию по умолчанию с переопределениями из
// переменных окружения RRHH_REDIS_*
func GetConfig() *Config {
	config := NewConfig()

	if v := os.Getenv("RRHH_REDIS_ADDR"); v != "" {
		config.Addr = v
	}
	if v := os.Getenv("RRHH_REDIS_PASSWORD"); v != "" {
		config.Password = v
	}
	if v, err := strconv.Atoi(os.Getenv("RRHH_REDIS_DB")); err == nil {
		config.DB = v
	}
	if v, err := strconv.Atoi(os.Getenv("RRHH_REDIS_MAX_RETRIES")); err == nil && v >= 0 {
		config.MaxRetries = v
	}
	if v, err := time.ParseDuration(os.Getenv("RRHH_REDIS_RETRY_INTERVAL")); err == nil {
		config.RetryInterval = v
	}

	return config
}

// Connect устанавливает подключение к Redis; неудачный ping повторяется
// MaxRetries раз с интервалом RetryInterval
func Connect(ctx context.Context, config *Config) (*Client, error) {
	var client *redis.Client

	err := retry.Do(ctx, retry.Config{
		MaxAttempts:  config.MaxRetries + 1,
		InitialDelay: config.RetryInterval,
		Multiplier:   1,
	}, func(ctx context.Context) error {
		c := redis.NewClient(&redis.Options{
			Addr:               config.Addr,
			Password:           config.Password,
			DB:                 config.DB,
			PoolSize:           config.PoolSize,
			MinIdleConns:       config.MinIdleConn,
			DialTimeout:        5 * time.Second,
			ReadTimeout:        3 * time.Second,
			WriteTimeout:       3 * time.Second,
			PoolTimeout:        4 * time.Second,
			IdleCheckFrequency: config.HealthCheck,
		})
		if err := c.Ping(ctx).Err(); err != nil {
			c.Close()
			return fmt.Errorf("failed to ping redis: %w", err)
		}
		client = c
		return nil
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", config.Addr, err)
	}

	return &Client{Client: client}, nil
}

// Close закрывает подключение к Redis
func (r *Client) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// HealthCheck проверяет состояние подключения к Redis
func (r *Client) HealthCheck(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return r.Client.Ping(ctx).Err()
}
