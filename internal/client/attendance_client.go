package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"RRHHPlatform/internal/domain"
)

// AttendanceClient отметки посещаемости и синхронизация устройств
type AttendanceClient struct {
	api *API
}

// NewAttendanceClient создает клиент посещаемости
func NewAttendanceClient(api *API) *AttendanceClient {
	return &AttendanceClient{api: api}
}

func rangeQuery(r domain.DateRange) url.Values {
	query := url.Values{}
	query.Set("fecha_inicio", r.FechaInicio)
	query.Set("fecha_fin", r.FechaFin)
	return query
}

// List GET /asistencias
func (c *AttendanceClient) List(ctx context.Context, q domain.AttendanceQuery) (*domain.Page[domain.Attendance], error) {
	query := url.Values{}
	if q.FechaInicio != "" {
		query.Set("fecha_inicio", q.FechaInicio)
	}
	if q.FechaFin != "" {
		query.Set("fecha_fin", q.FechaFin)
	}
	if q.UserID != "" {
		query.Set("user_id", q.UserID)
	}
	if q.DispositivoID > 0 {
		query.Set("dispositivo_id", strconv.Itoa(q.DispositivoID))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		query.Set("offset", strconv.Itoa(q.Offset))
	}

	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/asistencias", query, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[domain.Attendance](raw)
}

// Count GET /asistencias/count
func (c *AttendanceClient) Count(ctx context.Context) (*domain.AttendanceCount, error) {
	var resp domain.AttendanceCount
	if err := c.api.Get(ctx, "/asistencias/count", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RealTime читает отметки прямо с устройства (GET /asistencias/tiempo-real/:id)
func (c *AttendanceClient) RealTime(ctx context.Context, deviceID int) ([]domain.Attendance, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, fmt.Sprintf("/asistencias/tiempo-real/%d", deviceID), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Attendance](raw, "data")
}

// SyncDevice POST /asistencias/sincronizar/:id
func (c *AttendanceClient) SyncDevice(ctx context.Context, deviceID int) (*domain.SyncAttendanceResponse, error) {
	var resp domain.SyncAttendanceResponse
	if err := c.api.Post(ctx, fmt.Sprintf("/asistencias/sincronizar/%d", deviceID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SyncToday POST /asistencias/sincronizar-hoy/:id
func (c *AttendanceClient) SyncToday(ctx context.Context, deviceID int) (*domain.SyncAttendanceResponse, error) {
	var resp domain.SyncAttendanceResponse
	if err := c.api.Post(ctx, fmt.Sprintf("/asistencias/sincronizar-hoy/%d", deviceID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SyncAll POST /asistencias/sincronizar-todos
func (c *AttendanceClient) SyncAll(ctx context.Context) (*domain.SyncAllResponse, error) {
	var resp domain.SyncAllResponse
	if err := c.api.Post(ctx, "/asistencias/sincronizar-todos", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearDevice DELETE /asistencias/:id/limpiar
func (c *AttendanceClient) ClearDevice(ctx context.Context, deviceID int) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Delete(ctx, fmt.Sprintf("/asistencias/%d/limpiar", deviceID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DailyReport GET /asistencias/reporte
func (c *AttendanceClient) DailyReport(ctx context.Context, r domain.DateRange) ([]map[string]any, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/asistencias/reporte", rangeQuery(r), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[map[string]any](raw, "data")
}

// Calculate запускает расчет посещаемости (POST /asistencias/calcular, параметры в query)
func (c *AttendanceClient) Calculate(ctx context.Context, r domain.DateRange) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Send(ctx, http.MethodPost, "/asistencias/calcular", rangeQuery(r), struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register ручная отметка (POST /asistencias/registrar)
func (c *AttendanceClient) Register(ctx context.Context, req domain.RegisterAttendanceRequest) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Post(ctx, "/asistencias/registrar", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UserDaily GET /asistencias/usuario/:id/diario
func (c *AttendanceClient) UserDaily(ctx context.Context, userID string, r domain.DateRange) (*domain.UserDailyReport, error) {
	var resp domain.UserDailyReport
	if err := c.api.Get(ctx, fmt.Sprintf("/asistencias/usuario/%s/diario", userID), rangeQuery(r), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
