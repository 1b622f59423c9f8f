package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"RRHHPlatform/internal/store"
	"RRHHPlatform/pkg/validation"
)

// EnvPrefix префикс переменных окружения (RRHH_SERVICES_AUTH и т.п.)
const EnvPrefix = "RRHH"

// Services базовые адреса пяти бэкендов
type Services struct {
	Auth        string `yaml:"auth" json:"auth" validate:"required,url"`
	Biometric   string `yaml:"biometric" json:"biometric" validate:"required,url"`
	Papeletas   string `yaml:"papeletas" json:"papeletas" validate:"required,url"`
	Incidencias string `yaml:"incidencias" json:"incidencias" validate:"required,url"`
	Reportes    string `yaml:"reportes" json:"reportes" validate:"required,url"`
}

// Префиксы путей сервисов за общим шлюзом
const (
	GatewayPrefixAuth        = "/api-auth"
	GatewayPrefixBiometric   = "/api-biometrico"
	GatewayPrefixPapeletas   = "/api-papeletas"
	GatewayPrefixIncidencias = "/api-incidencias"
	GatewayPrefixReportes    = "/api-reportes"
)

// Config представляет конфигурацию консоли
type Config struct {
	Environment string `yaml:"environment" json:"environment" validate:"oneof=dev staging prod"`

	Logger struct {
		Level string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`
	} `yaml:"logger" json:"logger"`

	// Адреса сервисов при прямом подключении
	Services Services `yaml:"services" json:"services"`

	// Общий шлюз: если включен, адреса сервисов строятся как <url><prefijo>
	Gateway struct {
		Enabled bool   `yaml:"enabled" json:"enabled"`
		URL     string `yaml:"url" json:"url" validate:"required_if=Enabled true,omitempty,url"`
	} `yaml:"gateway" json:"gateway"`

	HTTP struct {
		Timeout int `yaml:"timeout" json:"timeout" validate:"min=1,max=300"` // секунды
	} `yaml:"http" json:"http"`

	Storage struct {
		Backend string `yaml:"backend" json:"backend" validate:"oneof=file redis memory"`
		Dir     string `yaml:"dir,omitempty" json:"dir,omitempty"`
		Redis   struct {
			Addr     string `yaml:"addr" json:"addr" validate:"omitempty,hostname_port"`
			Password string `yaml:"password,omitempty" json:"-"`
			DB       int    `yaml:"db" json:"db" validate:"min=0,max=15"`
			Prefix   string `yaml:"prefix" json:"prefix"`
		} `yaml:"redis" json:"redis"`
	} `yaml:"storage" json:"storage"`

	Output struct {
		Format string `yaml:"format" json:"format" validate:"oneof=table json yaml"`
		Colors bool   `yaml:"colors" json:"colors"`
	} `yaml:"output" json:"output"`

	// Фоновая синхронизация устройств (rrhh sync)
	Sync struct {
		Schedule      string  `yaml:"schedule" json:"schedule" validate:"required"`
		MetricsAddr   string  `yaml:"metrics_addr" json:"metrics_addr" validate:"required"`
		RatePerSecond float64 `yaml:"rate_per_second" json:"rate_per_second" validate:"gt=0"`
	} `yaml:"sync" json:"sync"`

	// Путь к файлу конфигурации
	Path string `yaml:"-" json:"-"`
}

// DefaultConfig возвращает конфигурацию по умолчанию: локальные порты
// сервисов из окружения разработки
func DefaultConfig() *Config {
	config := &Config{}

	config.Environment = "prod"
	config.Logger.Level = "warn"

	config.Services = Services{
		Auth:        "http://localhost:3001/api",
		Biometric:   "http://localhost:8000/api",
		Papeletas:   "http://localhost:3002/api",
		Incidencias: "http://localhost:3003/api",
		Reportes:    "http://localhost:8001/api",
	}

	config.HTTP.Timeout = 30

	config.Storage.Backend = store.BackendFile
	config.Storage.Redis.Addr = "localhost:6379"
	config.Storage.Redis.Prefix = store.DefaultRedisPrefix

	config.Output.Format = "table"
	config.Output.Colors = true

	config.Sync.Schedule = "*/15 * * * *"
	config.Sync.MetricsAddr = ":9090"
	config.Sync.RatePerSecond = 1

	return config
}

// ServiceURLs возвращает итоговые адреса сервисов с учетом шлюза
func (c *Config) ServiceURLs() Services {
	if !c.Gateway.Enabled {
		return c.Services
	}
	base := strings.TrimRight(c.Gateway.URL, "/")
	return Services{
		Auth:        base + GatewayPrefixAuth,
		Biometric:   base + GatewayPrefixBiometric,
		Papeletas:   base + GatewayPrefixPapeletas,
		Incidencias: base + GatewayPrefixIncidencias,
		Reportes:    base + GatewayPrefixReportes,
	}
}

// LoadConfig загружает конфигурацию: значения по умолчанию, затем файл,
// затем .env и переменные окружения RRHH_*
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	config.Path = path

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error al leer el archivo de configuración: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error al interpretar la configuración: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("error de acceso al archivo de configuración: %w", err)
	}

	config.applyEnv(newEnvViper())

	return config, nil
}

// loadDotEnv подгружает .env из текущей директории, не перезаписывая окружение
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error al leer .env: %w", err)
	}
	return nil
}

func newEnvViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func (c *Config) stringFields() map[string]*string {
	return map[string]*string{
		"environment":            &c.Environment,
		"logger.level":           &c.Logger.Level,
		"services.auth":          &c.Services.Auth,
		"services.biometric":     &c.Services.Biometric,
		"services.papeletas":     &c.Services.Papeletas,
		"services.incidencias":   &c.Services.Incidencias,
		"services.reportes":      &c.Services.Reportes,
		"gateway.url":            &c.Gateway.URL,
		"storage.backend":        &c.Storage.Backend,
		"storage.dir":            &c.Storage.Dir,
		"storage.redis.addr":     &c.Storage.Redis.Addr,
		"storage.redis.password": &c.Storage.Redis.Password,
		"storage.redis.prefix":   &c.Storage.Redis.Prefix,
		"output.format":          &c.Output.Format,
		"sync.schedule":          &c.Sync.Schedule,
		"sync.metrics_addr":      &c.Sync.MetricsAddr,
	}
}

var scalarKeys = []string{
	"gateway.enabled",
	"http.timeout",
	"storage.redis.db",
	"output.colors",
	"sync.rate_per_second",
}

// Keys возвращает все ключи, которые можно переопределить
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(scalarKeys)+16)
	for key := range c.stringFields() {
		keys = append(keys, key)
	}
	keys = append(keys, scalarKeys...)
	sort.Strings(keys)
	return keys
}

// Values текущие значения всех ключей в строковом виде; пароль скрыт
func (c *Config) Values() map[string]string {
	values := make(map[string]string, len(scalarKeys)+16)
	for key, src := range c.stringFields() {
		values[key] = *src
	}
	if c.Storage.Redis.Password != "" {
		values["storage.redis.password"] = "********"
	}
	values["gateway.enabled"] = strconv.FormatBool(c.Gateway.Enabled)
	values["http.timeout"] = strconv.Itoa(c.HTTP.Timeout)
	values["storage.redis.db"] = strconv.Itoa(c.Storage.Redis.DB)
	values["output.colors"] = strconv.FormatBool(c.Output.Colors)
	values["sync.rate_per_second"] = strconv.FormatFloat(c.Sync.RatePerSecond, 'f', -1, 64)
	return values
}

// applyEnv переопределяет поля значениями из viper (окружение или явные значения)
func (c *Config) applyEnv(v *viper.Viper) {
	for key, dst := range c.stringFields() {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	if v.IsSet("gateway.enabled") {
		c.Gateway.Enabled = v.GetBool("gateway.enabled")
	}
	if v.IsSet("http.timeout") {
		c.HTTP.Timeout = v.GetInt("http.timeout")
	}
	if v.IsSet("storage.redis.db") {
		c.Storage.Redis.DB = v.GetInt("storage.redis.db")
	}
	if v.IsSet("output.colors") {
		c.Output.Colors = v.GetBool("output.colors")
	}
	if v.IsSet("sync.rate_per_second") {
		c.Sync.RatePerSecond = v.GetFloat64("sync.rate_per_second")
	}
}

// Save сохраняет конфигурацию в файл
func (c *Config) Save() error {
	if c.Path == "" {
		return fmt.Errorf("no se indicó la ruta del archivo de configuración")
	}

	dir := filepath.Dir(c.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("error al crear el directorio: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error al serializar la configuración: %w", err)
	}

	if err := os.WriteFile(c.Path, data, 0600); err != nil {
		return fmt.Errorf("error al escribir el archivo de configuración: %w", err)
	}

	return nil
}

// GetConfigPath возвращает путь к файлу конфигурации
func GetConfigPath() (string, error) {
	dir, err := store.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// InitConfig создает файл конфигурации по умолчанию
func InitConfig(path string) (*Config, error) {
	config := DefaultConfig()
	config.Path = path

	if err := config.Save(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate проверяет валидность конфигурации
func (c *Config) Validate() error {
	if err := validation.NewValidator().Struct(c); err != nil {
		return fmt.Errorf("configuración inválida: %w", err)
	}
	return nil
}

// Set устанавливает значение по ключу вида services.auth (для rrhh config set)
func (c *Config) Set(key, value string) error {
	known := false
	for _, k := range c.Keys() {
		if k == key {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("clave de configuración desconocida: %s", key)
	}

	v := viper.New()
	v.Set(key, value)
	c.applyEnv(v)
	return nil
}
