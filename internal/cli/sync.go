package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/output"
	"RRHHPlatform/internal/store"
	"RRHHPlatform/internal/syncd"
	"RRHHPlatform/pkg/health"
	"RRHHPlatform/pkg/logger"
	pkgmetrics "RRHHPlatform/pkg/metrics"
	"RRHHPlatform/pkg/ratelimit"
	"RRHHPlatform/pkg/redis"
)

// defaultDeviceWindow минимальный интервал между проходами по одному устройству
const defaultDeviceWindow = 5 * time.Minute

type syncFlags struct {
	window       time.Duration
	includeUsers bool
}

func newSyncCmd(app *App) *cobra.Command {
	var flags syncFlags

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sincronización de todos los dispositivos biométricos",
		Long: `Descarga las marcaciones de todos los dispositivos activos, uno por uno y
con un ritmo limitado. Con backend de almacenamiento redis, varias instancias
comparten la ventana mínima entre sincronizaciones de un mismo dispositivo.`,
	}

	cmd.PersistentFlags().DurationVar(&flags.window, "ventana", defaultDeviceWindow, "intervalo mínimo entre sincronizaciones de un dispositivo")
	cmd.PersistentFlags().BoolVar(&flags.includeUsers, "usuarios", false, "descargar también los usuarios de cada dispositivo")

	cmd.AddCommand(
		newSyncRunCmd(app, &flags),
		newSyncDaemonCmd(app, &flags),
	)
	return requireAuth(cmd, RoleAdmin, RoleRRHH)
}

func newSyncRunCmd(app *App, flags *syncFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Ejecutar una pasada de sincronización",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			limiter, closeLimiter, err := app.syncLimiter(ctx)
			if err != nil {
				return err
			}
			defer closeLimiter()

			report, err := app.newSyncer(limiter, flags).RunOnce(ctx)
			if err != nil {
				return err
			}
			app.Cache.InvalidateMetrics()

			if report.Failed > 0 {
				app.Printer.Warning(strconv.Itoa(report.Failed) + " dispositivo(s) con error")
			}
			return app.Printer.Print("sync run", report, syncReportTable(report))
		}),
	}
}

func newSyncDaemonCmd(app *App, flags *syncFlags) *cobra.Command {
	var schedule, addr string
	var runOnStart bool

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Sincronizar periódicamente según un horario cron",
		Long: `Ejecuta pasadas de sincronización según sync.schedule y publica
/health, /ready, /live, /metrics y /sync en sync.metrics_addr hasta recibir
SIGINT o SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.runDaemon(ctx, flags, syncd.DaemonConfig{
				Schedule:   firstNonEmpty(schedule, app.Config.Sync.Schedule),
				Addr:       firstNonEmpty(addr, app.Config.Sync.MetricsAddr),
				RunOnStart: runOnStart,
			}); err != nil {
				app.Printer.Error("sync daemon", err)
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schedule, "horario", "", "expresión cron (por defecto sync.schedule)")
	cmd.Flags().StringVar(&addr, "addr", "", "dirección HTTP de salud y métricas (por defecto sync.metrics_addr)")
	cmd.Flags().BoolVar(&runOnStart, "al-iniciar", true, "ejecutar una pasada al arrancar")
	return cmd
}

func (a *App) runDaemon(ctx context.Context, flags *syncFlags, config syncd.DaemonConfig) error {
	tp := pkgmetrics.InitializeOpenTelemetry("rrhh-sync", Version)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warn("Failed to shutdown tracer provider", logger.Error(err))
		}
	}()

	limiter, closeLimiter, err := a.syncLimiter(ctx)
	if err != nil {
		return err
	}
	defer closeLimiter()

	timeout := time.Duration(a.Config.HTTP.Timeout) * time.Second
	checker := health.NewCompositeHealthChecker(Version, timeout)
	probeClient := &http.Client{Timeout: timeout}
	for name, api := range a.Registry.APIs() {
		checker.Register(name, health.HTTPProbe(probeClient, api.BaseURL()))
	}
	if hc, ok := limiter.(interface{ HealthCheck(context.Context) error }); ok {
		checker.Register("redis", hc.HealthCheck)
	}

	daemon, err := syncd.NewDaemon(a.newSyncer(limiter, flags), config, checker, a.Metrics.Handler(), a.Logger)
	if err != nil {
		return err
	}

	a.Logger.Info("Sync daemon starting",
		logger.String("schedule", config.Schedule),
		logger.String("addr", config.Addr))
	a.Printer.Info("Demonio de sincronización iniciado (" + config.Schedule + "). Ctrl+C para detener.")

	if err := daemon.Run(ctx); err != nil {
		return err
	}
	a.Logger.Info("Sync daemon stopped")
	return nil
}

func (a *App) newSyncer(limiter ratelimit.RateLimiter, flags *syncFlags) *syncd.Syncer {
	return syncd.NewSyncer(
		a.Registry.Devices(),
		a.Registry.Attendance(),
		a.Registry.Users(),
		limiter,
		syncd.Options{
			RatePerSecond: a.Config.Sync.RatePerSecond,
			DeviceWindow:  flags.window,
			IncludeUsers:  flags.includeUsers,
		},
		a.Metrics,
		a.Logger,
	)
}

// redisLimiter ограничитель в Redis, который также отвечает на проверку здоровья
type redisLimiter struct {
	*ratelimit.RedisRateLimiter
	client *redis.Client
}

func (l *redisLimiter) HealthCheck(ctx context.Context) error {
	return l.client.HealthCheck(ctx)
}

// syncLimiter общий ограничитель в Redis при backend redis, иначе в памяти процесса
func (a *App) syncLimiter(ctx context.Context) (ratelimit.RateLimiter, func(), error) {
	if a.Config.Storage.Backend != store.BackendRedis {
		return ratelimit.NewMemoryRateLimiter(), func() {}, nil
	}

	client, err := redis.Connect(ctx, a.redisConfig())
	if err != nil {
		return nil, nil, err
	}
	limiter := &redisLimiter{
		RedisRateLimiter: ratelimit.NewRedisRateLimiter(client, a.Config.Storage.Redis.Prefix+"sync:"),
		client:           client,
	}
	return limiter, func() {
		if err := client.Close(); err != nil {
			a.Logger.Warn("Failed to close redis connection", logger.Error(err))
		}
	}, nil
}

func syncReportTable(r *syncd.Report) *output.Table {
	table := output.NewTable("DISPOSITIVO", "NOMBRE", "RESULTADO", "NUEVOS", "USUARIOS", "ERROR")
	for _, res := range r.Results {
		result, style := "✓ OK", output.StyleSuccess
		switch {
		case res.Skipped:
			result, style = "- Omitido", output.StyleInfo
		case !res.Success:
			result, style = "✗ Error", output.StyleError
		}
		table.AddRowWithStyle(style,
			strconv.Itoa(res.DeviceID), res.Nombre, result,
			strconv.Itoa(res.RegistrosNuevos), strconv.Itoa(res.UsuariosNuevos), orDash(res.Error))
	}
	return table
}
