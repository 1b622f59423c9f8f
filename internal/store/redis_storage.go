package store

import (
	"context"
	"errors"
	"fmt"

	"RRHHPlatform/pkg/redis"
)

// DefaultRedisPrefix префикс ключей в Redis
const DefaultRedisPrefix = "rrhh:storage:"

// RedisStorage хранит значения в Redis (общая сессия для нескольких рабочих мест)
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage создает хранилище поверх подключения
func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStorage{client: client, prefix: prefix}
}

// Get возвращает значение ключа
func (rs *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	v, err := rs.client.Client.Get(ctx, rs.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("ошибка чтения из Redis: %w", err)
	}
	return v, nil
}

// Set сохраняет значение ключа без срока жизни
func (rs *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := rs.client.Client.Set(ctx, rs.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("ошибка сохранения в Redis: %w", err)
	}
	return nil
}

// Remove удаляет ключ
func (rs *RedisStorage) Remove(ctx context.Context, key string) error {
	if err := rs.client.Client.Del(ctx, rs.prefix+key).Err(); err != nil {
		return fmt.Errorf("ошибка удаления из Redis: %w", err)
	}
	return nil
}

// Close закрывает подключение к Redis
func (rs *RedisStorage) Close() error {
	return rs.client.Close()
}
