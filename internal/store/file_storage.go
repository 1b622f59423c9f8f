package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// HomeEnv переменная окружения, переопределяющая домашнюю директорию консоли
const HomeEnv = "RRHH_HOME"

// FileStorage хранит значения в JSON файле ~/.rrhh/storage.json
type FileStorage struct {
	path string
	mu   sync.Mutex
}

// DefaultDir возвращает директорию консоли: $RRHH_HOME/.rrhh или ~/.rrhh
func DefaultDir() (string, error) {
	home := os.Getenv(HomeEnv)
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("ошибка получения домашней директории: %w", err)
		}
	}
	return filepath.Join(home, ".rrhh"), nil
}

// NewFileStorage создает файловое хранилище в dir (по умолчанию DefaultDir)
func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории %s: %w", dir, err)
	}

	return &FileStorage{path: filepath.Join(dir, "storage.json")}, nil
}

// Path путь к файлу хранилища
func (fs *FileStorage) Path() string {
	return fs.path
}

// Get возвращает значение ключа
func (fs *FileStorage) Get(_ context.Context, key string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set сохраняет значение ключа
func (fs *FileStorage) Set(_ context.Context, key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	values[key] = value
	return fs.save(values)
}

// Remove удаляет ключ; отсутствие ключа не является ошибкой
func (fs *FileStorage) Remove(_ context.Context, key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return fs.save(values)
}

// Close ничего не делает: файл открывается на время операции
func (fs *FileStorage) Close() error {
	return nil
}

func (fs *FileStorage) load() (map[string]string, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения хранилища: %w", err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("ошибка десериализации хранилища: %w", err)
	}
	return values, nil
}

func (fs *FileStorage) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации хранилища: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("ошибка сохранения хранилища: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("ошибка сохранения хранилища: %w", err)
	}
	return nil
}
