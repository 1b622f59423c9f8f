// Package cli реализует консоль rrhh: команды cobra поверх клиентов бэкендов,
// кэша справочников и сессии пользователя.
package cli

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"RRHHPlatform/internal/cache"
	"RRHHPlatform/internal/client"
	"RRHHPlatform/internal/config"
	"RRHHPlatform/internal/metrics"
	"RRHHPlatform/internal/output"
	"RRHHPlatform/internal/session"
	"RRHHPlatform/internal/store"
	"RRHHPlatform/pkg/logger"
	pkgmetrics "RRHHPlatform/pkg/metrics"
	"RRHHPlatform/pkg/redis"
	"RRHHPlatform/pkg/validation"
)

// Version версия консоли; переопределяется при сборке через -ldflags
var Version = "1.0.0"

// Options зависимости App. Пустые поля заполняются значениями по умолчанию.
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Config готовая конфигурация; если задана, файл не читается
	Config *config.Config
	// Storage готовое хранилище; если задано, бэкенд из конфигурации не открывается
	Storage store.Storage
	// Transport транспорт HTTP клиентов бэкендов
	Transport http.RoundTripper
	// Registry реестр prometheus; по умолчанию отдельный реестр процесса
	Registry *prometheus.Registry
	// Now часы для команд, зависящих от текущего времени
	Now func() time.Time
}

// App состояние одного запуска консоли
type App struct {
	Config    *config.Config
	Logger    logger.Logger
	Storage   store.Storage
	Registry  *client.Registry
	Cache     *cache.DataStore
	Session   *session.Store
	Metrics   *metrics.ClientMetrics
	Printer   *output.Printer
	Validator *validation.Validator

	in     io.Reader
	out    io.Writer
	errOut io.Writer
	opts   Options
	flags  *viper.Viper
	now    func() time.Time

	ownsStorage bool
	opened      bool
}

// NewApp создает App; подключения открываются в Open
func NewApp(opts Options) *App {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	flags := viper.New()
	flags.SetEnvPrefix(config.EnvPrefix)
	flags.AutomaticEnv()

	return &App{
		in:        opts.In,
		out:       opts.Out,
		errOut:    opts.Err,
		opts:      opts,
		flags:     flags,
		now:       opts.Now,
		Logger:    logger.NewNop(),
		Validator: validation.NewValidator(),
		Printer:   output.NewPrinter(opts.Out, opts.Err, output.FormatTable, false),
	}
}

// bindFlags связывает глобальные флаги с viper, как это делает корневая команда
func (a *App) bindFlags(flags *pflag.FlagSet) {
	for _, name := range []string{flagConfig, flagOutput, flagNoColor, flagDebug} {
		_ = a.flags.BindPFlag(name, flags.Lookup(name))
	}
}

// Open загружает конфигурацию и поднимает зависимости нужного уровня
func (a *App) Open(ctx context.Context, scope string) error {
	if a.opened {
		return nil
	}

	if err := a.loadConfig(scope); err != nil {
		return err
	}
	if err := a.setupPrinter(); err != nil {
		return err
	}
	if err := a.setupLogger(); err != nil {
		return err
	}
	if scope == scopeNone || scope == scopeConfig {
		a.opened = true
		return nil
	}

	a.setupMetrics()

	if err := a.setupStorage(ctx); err != nil {
		return err
	}

	opts := []client.Option{
		client.WithTimeout(time.Duration(a.Config.HTTP.Timeout) * time.Second),
		client.WithLogger(a.Logger),
		client.WithMetrics(a.Metrics),
		client.WithUserAgent("RRHH-CLI/" + Version),
		// 401 от любого бэкенда завершает сессию и очищает кэш
		client.WithUnauthorizedHook(a.Logout),
	}
	if a.opts.Transport != nil {
		opts = append(opts, client.WithTransport(a.opts.Transport))
	}
	a.Registry = client.NewRegistry(a.Config.ServiceURLs(), a.Storage, opts...)

	a.Cache = cache.NewDataStore(cache.Sources{
		Users:       a.Registry.Users(),
		AuthUsers:   a.Registry.Auth(),
		Departments: a.Registry.Departments(),
		Metrics:     a.Registry.Reports(),
	}, cache.WithLogger(a.Logger), cache.WithMetrics(a.Metrics))

	a.Session = session.NewStore(a.Storage, a.Registry.Auth(), a.Registry.Users(), a.Logger)
	a.Session.Init(ctx)

	a.opened = true
	return nil
}

func (a *App) loadConfig(scope string) error {
	if a.opts.Config != nil {
		a.Config = a.opts.Config
	} else if scope == scopeNone {
		a.Config = config.DefaultConfig()
	} else {
		path := a.flags.GetString(flagConfig)
		if path == "" {
			p, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			path = p
		}
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		a.Config = cfg
	}

	if a.flags.IsSet(flagOutput) {
		if err := a.Config.Set("output.format", a.flags.GetString(flagOutput)); err != nil {
			return err
		}
	}
	if a.flags.GetBool(flagNoColor) {
		a.Config.Output.Colors = false
	}
	if a.flags.GetBool(flagDebug) {
		a.Config.Logger.Level = "debug"
	}

	if scope == scopeNone {
		return nil
	}
	return a.Config.Validate()
}

func (a *App) setupPrinter() error {
	format, err := output.ParseFormat(a.Config.Output.Format)
	if err != nil {
		return err
	}
	a.Printer = output.NewPrinter(a.out, a.errOut, format, output.DetectColors(a.out, a.Config.Output.Colors))
	return nil
}

func (a *App) setupLogger() error {
	log, err := logger.NewLoggerWithWriter(a.Config.Environment, a.Config.Logger.Level, "rrhh-cli", a.errOut)
	if err != nil {
		return err
	}
	a.Logger = log
	return nil
}

func (a *App) setupMetrics() {
	registry := a.opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	a.Metrics = metrics.NewClientMetrics(pkgmetrics.NewMetrics("rrhh", registry), a.Logger)
}

func (a *App) setupStorage(ctx context.Context) error {
	if a.opts.Storage != nil {
		a.Storage = a.opts.Storage
		return nil
	}

	storage, err := store.Open(ctx, store.Options{
		Backend:   a.Config.Storage.Backend,
		Dir:       a.Config.Storage.Dir,
		RedisConf: a.redisConfig(),
		KeyPrefix: a.Config.Storage.Redis.Prefix,
	})
	if err != nil {
		return err
	}
	a.Storage = storage
	a.ownsStorage = true
	return nil
}

// redisConfig параметры Redis из секции storage
func (a *App) redisConfig() *redis.Config {
	conf := redis.GetConfig()
	conf.Addr = a.Config.Storage.Redis.Addr
	conf.Password = a.Config.Storage.Redis.Password
	conf.DB = a.Config.Storage.Redis.DB
	return conf
}

// Reset очищает кэш справочников
func (a *App) Reset() {
	if a.Cache != nil {
		a.Cache.Reset()
	}
}

// Logout завершает сессию и очищает кэш
func (a *App) Logout(ctx context.Context) {
	if a.Session != nil {
		a.Session.Logout(ctx)
	}
	a.Reset()
}

// Close освобождает ресурсы запуска
func (a *App) Close() error {
	var err error
	if a.ownsStorage && a.Storage != nil {
		err = a.Storage.Close()
	}
	_ = a.Logger.Sync()
	return err
}
