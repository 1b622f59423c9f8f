// Package syncd выгружает отметки с биометрических устройств по расписанию
// и отдает состояние синхронизации, health и метрики по HTTP.
package syncd

import (
	"context"
	"strconv"
	"sync"
	"time"

	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/metrics"
	"RRHHPlatform/pkg/logger"
	"RRHHPlatform/pkg/ratelimit"
)

// DeviceSource список устройств
type DeviceSource interface {
	List(ctx context.Context) ([]domain.Device, error)
}

// AttendanceSyncer выгрузка отметок одного устройства
type AttendanceSyncer interface {
	SyncDevice(ctx context.Context, deviceID int) (*domain.SyncAttendanceResponse, error)
}

// UsersSyncer выгрузка сотрудников одного устройства
type UsersSyncer interface {
	SyncFromDevice(ctx context.Context, deviceID int) (*domain.SyncUsersResponse, error)
}

// DeviceResult результат синхронизации одного устройства
type DeviceResult struct {
	DeviceID        int    `json:"dispositivo_id"`
	Nombre          string `json:"dispositivo_nombre"`
	Success         bool   `json:"success"`
	Skipped         bool   `json:"omitido,omitempty"`
	RegistrosNuevos int    `json:"registros_nuevos"`
	UsuariosNuevos  int    `json:"usuarios_nuevos,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Report итог одного прохода по устройствам
type Report struct {
	StartedAt  time.Time      `json:"inicio"`
	FinishedAt time.Time      `json:"fin"`
	Devices    int            `json:"dispositivos"`
	Failed     int            `json:"fallidos"`
	Results    []DeviceResult `json:"resultados"`
	Error      string         `json:"error,omitempty"`
}

// Options настройки прохода синхронизации
type Options struct {
	// RatePerSecond темп обращения к устройствам
	RatePerSecond float64
	// DeviceWindow минимальный интервал между синхронизациями одного устройства
	// для всех процессов, разделяющих RateLimiter
	DeviceWindow time.Duration
	// IncludeUsers дополнительно выгружает сотрудников с устройства
	IncludeUsers bool
}

// Syncer проходит по активным устройствам и выгружает отметки
type Syncer struct {
	devices    DeviceSource
	attendance AttendanceSyncer
	users      UsersSyncer
	pacer      ratelimit.Pacer
	limiter    ratelimit.RateLimiter
	opts       Options
	metrics    *metrics.ClientMetrics
	logger     logger.Logger
	now        func() time.Time

	mu      sync.Mutex
	running bool
	last    *Report
}

// NewSyncer создает Syncer. limiter может быть nil, тогда окно устройства не проверяется;
// users может быть nil, если выгрузка сотрудников не нужна.
func NewSyncer(devices DeviceSource, attendance AttendanceSyncer, users UsersSyncer, limiter ratelimit.RateLimiter, opts Options, m *metrics.ClientMetrics, log logger.Logger) *Syncer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Syncer{
		devices:    devices,
		attendance: attendance,
		users:      users,
		pacer:      ratelimit.NewLocalPacer(opts.RatePerSecond, 1),
		limiter:    limiter,
		opts:       opts,
		metrics:    m,
		logger:     log.With(logger.String("component", "syncd")),
		now:        time.Now,
	}
}

// RunOnce синхронизирует все активные устройства по очереди в заданном темпе.
// Ошибка одного устройства не прерывает проход; ошибка списка устройств возвращается.
func (s *Syncer) RunOnce(ctx context.Context) (*Report, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	report := &Report{StartedAt: s.now(), Results: make([]DeviceResult, 0)}

	devices, err := s.devices.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list devices", logger.Error(err), logger.CtxField(ctx))
		report.Error = err.Error()
		report.FinishedAt = s.now()
		s.metrics.SyncFinished("attendance", err, report.FinishedAt.Sub(report.StartedAt))
		s.store(report)
		return report, err
	}

	for _, device := range devices {
		if !device.Activo {
			continue
		}
		if err := s.pacer.Wait(ctx); err != nil {
			report.Error = err.Error()
			break
		}

		result := s.syncDevice(ctx, device)
		report.Results = append(report.Results, result)
		report.Devices++
		if !result.Success && !result.Skipped {
			report.Failed++
		}
	}

	report.FinishedAt = s.now()

	var runErr error
	if report.Failed > 0 {
		runErr = ErrPartialFailure
	}
	s.metrics.SyncFinished("attendance", runErr, report.FinishedAt.Sub(report.StartedAt))

	s.logger.Info("Sync run finished",
		logger.Int("devices", report.Devices),
		logger.Int("failed", report.Failed),
		logger.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
		logger.CtxField(ctx))

	s.store(report)
	return report, nil
}

func (s *Syncer) syncDevice(ctx context.Context, device domain.Device) DeviceResult {
	result := DeviceResult{DeviceID: device.ID, Nombre: device.Nombre}
	target := "device:" + strconv.Itoa(device.ID)

	// окно занимается до вызова и освобождается при неудачной синхронизации
	windowTaken := false
	if s.limiter != nil && s.opts.DeviceWindow > 0 {
		exceeded, err := s.limiter.CheckRateLimit(ctx, target, 1, s.opts.DeviceWindow)
		if err != nil {
			s.logger.Warn("Rate limiter unavailable, syncing anyway",
				logger.Int("device_id", device.ID),
				logger.Error(err))
		} else if exceeded {
			s.logger.Debug("Device synced recently, skipping", logger.Int("device_id", device.ID))
			result.Skipped = true
			return result
		} else {
			windowTaken = true
		}
	}

	start := s.now()
	resp, err := s.attendance.SyncDevice(ctx, device.ID)
	if err == nil && resp == nil {
		resp = &domain.SyncAttendanceResponse{Success: true, DispositivoID: device.ID}
	}
	if err == nil && !resp.Success {
		err = &DeviceError{DeviceID: device.ID, Message: resp.Message}
	}
	s.metrics.SyncFinished(target, err, s.now().Sub(start))

	if err != nil {
		s.logger.Warn("Device sync failed",
			logger.Int("device_id", device.ID),
			logger.String("device", device.Nombre),
			logger.Error(err))
		result.Error = err.Error()
		if windowTaken {
			if rerr := s.limiter.Release(context.WithoutCancel(ctx), target); rerr != nil {
				s.logger.Warn("Failed to release device window",
					logger.Int("device_id", device.ID),
					logger.Error(rerr))
			}
		}
		return result
	}

	result.Success = true
	result.RegistrosNuevos = resp.RegistrosNuevos

	if s.opts.IncludeUsers && s.users != nil {
		users, err := s.users.SyncFromDevice(ctx, device.ID)
		if err != nil {
			s.logger.Warn("Device users sync failed", logger.Int("device_id", device.ID), logger.Error(err))
		} else if users != nil {
			result.UsuariosNuevos = users.UsuariosNuevos
		}
	}

	return result
}

func (s *Syncer) store(r *Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = r
}

// Last последний завершенный проход или nil
func (s *Syncer) Last() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	c := *s.last
	c.Results = append([]DeviceResult(nil), s.last.Results...)
	return &c
}

// Running сообщает, идет ли проход
func (s *Syncer) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
