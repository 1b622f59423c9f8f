// Package store реализует долговременное хранилище ключ-значение консоли
// (аналог localStorage): токен, профиль пользователя и настройки.
package store

import (
	"context"
	"errors"
	"fmt"

	"RRHHPlatform/pkg/redis"
)

// Ключи хранилища
const (
	KeyToken                 = "token"
	KeyUser                  = "user"
	KeyNotifyMaxTimeExceeded = "notifyMaxTimeExceeded"
)

// ErrNotFound возвращается, когда ключ отсутствует
var ErrNotFound = errors.New("key not found")

// Storage долговременное хранилище строк по ключу
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Бэкенды хранилища
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options параметры открытия хранилища
type Options struct {
	Backend   string
	Dir       string
	RedisConf *redis.Config
	KeyPrefix string
}

// Open открывает хранилище выбранного бэкенда
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileStorage(opts.Dir)
	case BackendRedis:
		conf := opts.RedisConf
		if conf == nil {
			conf = redis.GetConfig()
		}
		client, err := redis.Connect(ctx, conf)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
		}
		return NewRedisStorage(client, opts.KeyPrefix), nil
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("неизвестный бэкенд хранилища: %s", opts.Backend)
	}
}

// GetOptional возвращает значение или пустую строку, если ключа нет
func GetOptional(ctx context.Context, s Storage, key string) (string, error) {
	v, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}
