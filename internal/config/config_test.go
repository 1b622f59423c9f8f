package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultConfig проверяет значения по умолчанию
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:3001/api", cfg.Services.Auth)
	assert.Equal(t, "http://localhost:8000/api", cfg.Services.Biometric)
	assert.Equal(t, "http://localhost:3002/api", cfg.Services.Papeletas)
	assert.Equal(t, "http://localhost:3003/api", cfg.Services.Incidencias)
	assert.Equal(t, "http://localhost:8001/api", cfg.Services.Reportes)
	assert.Equal(t, 30, cfg.HTTP.Timeout)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.NoError(t, cfg.Validate())
}

// TestServiceURLs_Gateway проверяет построение адресов через шлюз
func TestServiceURLs_Gateway(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gateway.Enabled = true
	cfg.Gateway.URL = "http://192.168.5.173/"

	urls := cfg.ServiceURLs()
	assert.Equal(t, "http://192.168.5.173/api-auth", urls.Auth)
	assert.Equal(t, "http://192.168.5.173/api-biometrico", urls.Biometric)
	assert.Equal(t, "http://192.168.5.173/api-papeletas", urls.Papeletas)
	assert.Equal(t, "http://192.168.5.173/api-incidencias", urls.Incidencias)
	assert.Equal(t, "http://192.168.5.173/api-reportes", urls.Reportes)
}

// TestLoadConfig_FileAndEnv проверяет порядок: файл, затем окружение
func TestLoadConfig_FileAndEnv(t *testing.T) {
	chdirTemp(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
environment: dev
services:
  auth: http://auth.internal/api
  biometric: http://bio.internal/api
  papeletas: http://pap.internal/api
  incidencias: http://inc.internal/api
  reportes: http://rep.internal/api
http:
  timeout: 10
output:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Setenv("RRHH_SERVICES_REPORTES", "http://override.internal/api")
	t.Setenv("RRHH_HTTP_TIMEOUT", "45")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "http://auth.internal/api", cfg.Services.Auth)
	assert.Equal(t, "http://override.internal/api", cfg.Services.Reportes)
	assert.Equal(t, 45, cfg.HTTP.Timeout)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, path, cfg.Path)
	assert.NoError(t, cfg.Validate())
}

// TestLoadConfig_DotEnv проверяет чтение .env из текущей директории
func TestLoadConfig_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RRHH_STORAGE_BACKEND=memory\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("RRHH_STORAGE_BACKEND") })

	cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Backend)
}

// TestLoadConfig_Invalid проверяет ошибку парсинга YAML
func TestLoadConfig_Invalid(t *testing.T) {
	chdirTemp(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("services: [unclosed"), 0600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

// TestValidate проверяет правила валидации
func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Services.Auth = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Gateway.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg.Gateway.URL = "http://gateway.local"
	assert.NoError(t, cfg.Validate())
}

// TestSaveAndSet проверяет сохранение и изменение по ключу
func TestSaveAndSet(t *testing.T) {
	chdirTemp(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)

	require.NoError(t, cfg.Set("services.biometric", "http://10.0.0.5:8000/api"))
	require.NoError(t, cfg.Set("gateway.enabled", "true"))
	require.NoError(t, cfg.Set("http.timeout", "20"))
	assert.Error(t, cfg.Set("unknown.key", "x"))
	require.NoError(t, cfg.Save())

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000/api", loaded.Services.Biometric)
	assert.True(t, loaded.Gateway.Enabled)
	assert.Equal(t, 20, loaded.HTTP.Timeout)
	assert.Contains(t, loaded.Keys(), "storage.redis.addr")
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

// TestValues проверяет строковое представление ключей
func TestValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Redis.Password = "secret"

	values := cfg.Values()

	assert.Len(t, values, len(cfg.Keys()))
	assert.Equal(t, "30", values["http.timeout"])
	assert.Equal(t, "false", values["gateway.enabled"])
	assert.Equal(t, "1", values["sync.rate_per_second"])
	assert.Equal(t, "********", values["storage.redis.password"])
}
