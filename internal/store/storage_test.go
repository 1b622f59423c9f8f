package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RRHHPlatform/pkg/redis"
)

// exerciseStorage общий сценарий для всех бэкендов
func exerciseStorage(t *testing.T, s Storage) {
	ctx := context.Background()

	_, err := s.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)

	v, err := GetOptional(ctx, s, KeyToken)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.Set(ctx, KeyToken, "abc.def.ghi"))
	require.NoError(t, s.Set(ctx, KeyUser, `{"dni":"12345678"}`))

	v, err = s.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", v)

	require.NoError(t, s.Remove(ctx, KeyToken))
	require.NoError(t, s.Remove(ctx, KeyToken))

	_, err = s.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)

	v, err = s.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"dni":"12345678"}`, v)
}

// TestMemoryStorage проверяет хранилище в памяти
func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemoryStorage())
}

// TestFileStorage проверяет файловое хранилище и права доступа
func TestFileStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".rrhh")

	s, err := NewFileStorage(dir)
	require.NoError(t, err)
	exerciseStorage(t, s)

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reopened, err := NewFileStorage(dir)
	require.NoError(t, err)
	v, err := reopened.Get(context.Background(), KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"dni":"12345678"}`, v)
}

// TestFileStorage_HomeEnv проверяет переопределение домашней директории
func TestFileStorage_HomeEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	s, err := NewFileStorage("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".rrhh", "storage.json"), s.Path())
}

// TestFileStorage_Corrupt проверяет ошибку при поврежденном файле
func TestFileStorage_Corrupt(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStorage(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0600))

	_, err = s.Get(context.Background(), KeyToken)
	assert.Error(t, err)
}

// TestOpen проверяет выбор бэкенда
func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)

	s, err = Open(ctx, Options{Backend: BackendFile, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStorage{}, s)

	_, err = Open(ctx, Options{Backend: "etcd"})
	assert.Error(t, err)
}

// TestRedisStorage проверяет хранилище в Redis, если он доступен локально
func TestRedisStorage(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conf := redis.NewConfig()
	conf.MaxRetries = 0
	client, err := redis.Connect(ctx, conf)
	if err != nil {
		t.Skipf("Redis недоступен: %v", err)
	}

	s := NewRedisStorage(client, "rrhh:test:"+time.Now().Format("150405.000000")+":")
	defer s.Close()

	exerciseStorage(t, s)
	require.NoError(t, s.Remove(ctx, KeyUser))
}
