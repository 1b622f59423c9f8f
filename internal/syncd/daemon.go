package syncd

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"

	"RRHHPlatform/pkg/health"
	"RRHHPlatform/pkg/logger"
)

// DaemonConfig настройки демона синхронизации
type DaemonConfig struct {
	// Schedule cron выражение из пяти полей или дескриптор (@every 15m, @hourly)
	Schedule string
	// Addr адрес HTTP сервера health и метрик; пустой адрес отключает сервер
	Addr string
	// RunOnStart выполняет проход сразу после запуска
	RunOnStart bool
}

// Daemon запускает Syncer по расписанию
type Daemon struct {
	syncer  *Syncer
	config  DaemonConfig
	checker health.HealthChecker
	metrics http.Handler
	logger  logger.Logger

	cron     *cron.Cron
	server   *http.Server
	listener net.Listener

	mu      sync.Mutex
	started atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	runs    sync.WaitGroup
}

// NewDaemon проверяет расписание и создает демона. metricsHandler может быть nil.
func NewDaemon(syncer *Syncer, config DaemonConfig, checker health.HealthChecker, metricsHandler http.Handler, log logger.Logger) (*Daemon, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if _, err := cron.ParseStandard(config.Schedule); err != nil {
		return nil, err
	}

	d := &Daemon{
		syncer:  syncer,
		config:  config,
		checker: checker,
		metrics: metricsHandler,
		logger:  log.With(logger.String("component", "syncd")),
	}
	d.cron = cron.New(
		cron.WithLogger(cronLogger{log: d.logger}),
		cron.WithChain(cron.Recover(cronLogger{log: d.logger})),
	)
	return d, nil
}

// Start регистрирует задачу в cron и поднимает HTTP сервер
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started.Load() {
		return nil
	}

	d.ctx, d.cancel = context.WithCancel(context.WithoutCancel(ctx))

	if _, err := d.cron.AddFunc(d.config.Schedule, d.trigger); err != nil {
		return err
	}

	if d.config.Addr != "" {
		ln, err := net.Listen("tcp", d.config.Addr)
		if err != nil {
			return err
		}
		d.listener = ln
		d.server = &http.Server{
			Handler:           d.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := d.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				d.logger.Error("HTTP server failed", logger.Error(err))
			}
		}()
		d.logger.Info("Sync daemon listening", logger.String("addr", ln.Addr().String()))
	}

	d.cron.Start()
	d.started.Store(true)

	d.logger.Info("Sync daemon started", logger.String("schedule", d.config.Schedule))

	if d.config.RunOnStart {
		d.trigger()
	}
	return nil
}

// Addr фактический адрес HTTP сервера или пустая строка
func (d *Daemon) Addr() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listener == nil {
		return ""
	}
	return d.listener.Addr().String()
}

// trigger запускает проход в фоне; пересекающиеся запуски пропускаются
func (d *Daemon) trigger() {
	d.runs.Add(1)
	go func() {
		defer d.runs.Done()
		if _, err := d.syncer.RunOnce(d.ctx); errors.Is(err, ErrAlreadyRunning) {
			d.logger.Warn("Previous sync run still in progress, skipping")
		}
	}()
}

// Stop останавливает расписание, дожидается текущего прохода и закрывает сервер
func (d *Daemon) Stop(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started.Load() {
		return nil
	}

	d.logger.Info("Stopping sync daemon")
	d.started.Store(false)

	cronCtx := d.cron.Stop()

	var err error
	if d.server != nil {
		err = d.server.Shutdown(ctx)
	}

	d.cancel()

	done := make(chan struct{})
	go func() {
		<-cronCtx.Done()
		d.runs.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		d.logger.Warn("Sync daemon stop timeout")
		if err == nil {
			err = ctx.Err()
		}
	}

	return err
}

// Run работает до отмены ctx
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return d.Stop(stopCtx)
}

// Router HTTP маршруты демона
func (d *Daemon) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	if d.checker != nil {
		r.Get("/health", health.Handler(d.checker))
	}
	r.Get("/ready", health.ReadyHandler(d.started.Load))
	r.Get("/live", health.LiveHandler())
	if d.metrics != nil {
		r.Handle("/metrics", d.metrics)
	}

	r.Get("/sync/last", d.handleLast)
	r.Post("/sync/run", d.handleRun)

	return r
}

func (d *Daemon) handleLast(w http.ResponseWriter, _ *http.Request) {
	last := d.syncer.Last()
	if last == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "todavía no se ejecutó ninguna sincronización"})
		return
	}
	writeJSON(w, http.StatusOK, last)
}

func (d *Daemon) handleRun(w http.ResponseWriter, _ *http.Request) {
	if d.syncer.Running() {
		writeJSON(w, http.StatusConflict, map[string]string{"message": ErrAlreadyRunning.Message})
		return
	}
	d.trigger()
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "sincronización iniciada"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// cronLogger передает сообщения cron в logger
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, logger.Any("details", keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, logger.Error(err), logger.Any("details", keysAndValues))
}
