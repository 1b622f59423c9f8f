package metrics

import (
	"context"
	"net/http"
	"time"

	"RRHHPlatform/pkg/logger"
	"RRHHPlatform/pkg/metrics"
)

// ClientMetrics содержит метрики консоли: запросы к бэкендам, кэш, синхронизация, команды.
// Все методы безопасны для nil получателя.
type ClientMetrics struct {
	*metrics.Metrics
	logger logger.Logger
}

// NewClientMetrics создает метрики консоли поверх pkg/metrics
func NewClientMetrics(m *metrics.Metrics, log logger.Logger) *ClientMetrics {
	if log == nil {
		log = logger.NewNop()
	}
	return &ClientMetrics{
		Metrics: m,
		logger:  log,
	}
}

// Track открывает спан исходящего запроса и возвращает функцию его завершения
func (c *ClientMetrics) Track(ctx context.Context, service, method, path string) (context.Context, func(status int, err error)) {
	if c == nil || c.Metrics == nil {
		return ctx, func(int, error) {}
	}

	start := time.Now()
	ctx, span := c.StartSpan(ctx, service, method, path)

	return ctx, func(status int, err error) {
		duration := time.Since(start)
		c.ObserveRequest(service, method, status, duration)
		metrics.EndSpan(span, status, err)
	}
}

// CacheLookup регистрирует попадание или промах кэша
func (c *ClientMetrics) CacheLookup(collection string, hit bool) {
	if c == nil || c.Metrics == nil {
		return
	}
	c.ObserveCache(collection, hit)
}

// SyncFinished регистрирует завершение синхронизации устройства
func (c *ClientMetrics) SyncFinished(target string, err error, duration time.Duration) {
	if c == nil || c.Metrics == nil {
		return
	}

	c.logger.Info("Sync finished",
		logger.String("target", target),
		logger.Bool("success", err == nil),
		logger.Duration("duration", duration))

	c.ObserveSync(target, err)
}

// CommandExecuted регистрирует выполнение команды консоли
func (c *ClientMetrics) CommandExecuted(command string, success bool, duration time.Duration) {
	if c == nil || c.Metrics == nil {
		return
	}

	c.logger.Debug("Command executed",
		logger.String("command", command),
		logger.Bool("success", success),
		logger.Duration("duration", duration))

	c.RequestCount.WithLabelValues("cli", command, getStatusLabel(success)).Inc()
	c.RequestDuration.WithLabelValues("cli", command).Observe(duration.Seconds())

	if !success {
		c.ErrorsCount.WithLabelValues("cli", command, "execution_failed").Inc()
	}
}

// Handler возвращает HTTP обработчик /metrics
func (c *ClientMetrics) Handler() http.Handler {
	if c == nil || c.Metrics == nil {
		return http.NotFoundHandler()
	}
	return c.GetHandler()
}

// getStatusLabel возвращает метку статуса
func getStatusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// CommandTimer таймер для команд консоли
type CommandTimer struct {
	metrics *ClientMetrics
	start   time.Time
}

// NewCommandTimer создает новый таймер для команды
func (c *ClientMetrics) NewCommandTimer() *CommandTimer {
	return &CommandTimer{
		metrics: c,
		start:   time.Now(),
	}
}

// Finish завершает команду и регистрирует метрики
func (t *CommandTimer) Finish(command string, success bool) {
	t.metrics.CommandExecuted(command, success, time.Since(t.start))
}
