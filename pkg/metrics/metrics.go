package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

// Metrics представляет систему метрик клиента бэкендов
type Metrics struct {
	// Исходящие HTTP запросы к бэкендам
	RequestCount    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ErrorsCount     *prometheus.CounterVec

	// Кэш на стороне клиента
	CacheLookups *prometheus.CounterVec

	// Фоновая синхронизация устройств
	SyncRuns     *prometheus.CounterVec
	LastSyncTime *prometheus.GaugeVec

	// OpenTelemetry Tracer
	Tracer trace.Tracer `json:"-"`

	gatherer prometheus.Gatherer
}

// NewMetrics создает систему метрик.
// Если registry == nil, используется глобальный реестр Prometheus.
func NewMetrics(namespace string, registry *prometheus.Registry) *Metrics {
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if registry != nil {
		registerer = registry
		gatherer = registry
	}

	m := &Metrics{
		RequestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total number of requests sent to backend services",
			},
			[]string{"service", "method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Duration of backend requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service", "method"},
		),
		ErrorsCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "errors_total",
				Help:      "Total number of failed backend requests",
			},
			[]string{"service", "method", "error_type"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "lookups_total",
				Help:      "Cache lookups by collection and result",
			},
			[]string{"collection", "result"},
		),
		SyncRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "runs_total",
				Help:      "Device synchronisation runs by target and result",
			},
			[]string{"target", "result"},
		),
		LastSyncTime: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful synchronisation",
			},
			[]string{"target"},
		),
		Tracer:   otel.Tracer(namespace),
		gatherer: gatherer,
	}

	collectors := []prometheus.Collector{
		m.RequestCount, m.RequestDuration, m.ErrorsCount,
		m.CacheLookups, m.SyncRuns, m.LastSyncTime,
	}
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}

	return m
}

// GetHandler возвращает HTTP обработчик для эндпоинта /metrics
func (m *Metrics) GetHandler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest фиксирует результат исходящего запроса.
// status == 0 означает сетевую ошибку без ответа.
func (m *Metrics) ObserveRequest(service, method string, status int, duration time.Duration) {
	m.RequestCount.WithLabelValues(service, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(service, method).Observe(duration.Seconds())

	switch {
	case status == 0:
		m.ErrorsCount.WithLabelValues(service, method, "transport").Inc()
	case status >= 500:
		m.ErrorsCount.WithLabelValues(service, method, "server_error").Inc()
	case status >= 400:
		m.ErrorsCount.WithLabelValues(service, method, "client_error").Inc()
	}
}

// ObserveCache фиксирует попадание или промах кэша
func (m *Metrics) ObserveCache(collection string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(collection, result).Inc()
}

// ObserveSync фиксирует результат синхронизации устройства
func (m *Metrics) ObserveSync(target string, err error) {
	if err != nil {
		m.SyncRuns.WithLabelValues(target, "error").Inc()
		return
	}
	m.SyncRuns.WithLabelValues(target, "ok").Inc()
	m.LastSyncTime.WithLabelValues(target).SetToCurrentTime()
}

// StartSpan открывает спан исходящего запроса
func (m *Metrics) StartSpan(ctx context.Context, service, method, path string) (context.Context, trace.Span) {
	return m.Tracer.Start(ctx, service+" "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("rrhh.service", service),
			attribute.String("http.method", method),
			attribute.String("http.target", path),
		),
	)
}

// EndSpan закрывает спан с кодом ответа и ошибкой
func EndSpan(span trace.Span, status int, err error) {
	span.SetAttributes(attribute.Int("http.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// InitializeOpenTelemetry инициализирует OpenTelemetry провайдер трассировки
func InitializeOpenTelemetry(serviceName, version string) *tracesdk.TracerProvider {
	tp := tracesdk.NewTracerProvider(
		tracesdk.WithSampler(tracesdk.AlwaysSample()),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		)),
	)

	otel.SetTracerProvider(tp)

	return tp
}
