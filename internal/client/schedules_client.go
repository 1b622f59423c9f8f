package client

import (
	"context"
	"fmt"
	"net/http"

	"RRHHPlatform/internal/domain"
)

// SchedulesClient рабочие графики
type SchedulesClient struct {
	api *API
}

// NewSchedulesClient создает клиент графиков
func NewSchedulesClient(api *API) *SchedulesClient {
	return &SchedulesClient{api: api}
}

// List GET /horarios
func (c *SchedulesClient) List(ctx context.Context) ([]domain.Schedule, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/horarios", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Schedule](raw, "data")
}

// Get GET /horarios/:id
func (c *SchedulesClient) Get(ctx context.Context, id int) (*domain.Schedule, error) {
	return c.schedule(ctx, http.MethodGet, fmt.Sprintf("/horarios/%d", id), nil)
}

// Create POST /horarios
func (c *SchedulesClient) Create(ctx context.Context, req domain.ScheduleRequest) (*domain.Schedule, error) {
	return c.schedule(ctx, http.MethodPost, "/horarios", req)
}

// Update PUT /horarios/:id
func (c *SchedulesClient) Update(ctx context.Context, id int, req domain.ScheduleRequest) (*domain.Schedule, error) {
	return c.schedule(ctx, http.MethodPut, fmt.Sprintf("/horarios/%d", id), req)
}

// Delete DELETE /horarios/:id
func (c *SchedulesClient) Delete(ctx context.Context, id int) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Delete(ctx, fmt.Sprintf("/horarios/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *SchedulesClient) schedule(ctx context.Context, method, path string, body any) (*domain.Schedule, error) {
	raw, err := c.api.SendRaw(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	var s domain.Schedule
	if err := decodeObject(raw, &s, "data"); err != nil {
		return nil, err
	}
	return &s, nil
}
