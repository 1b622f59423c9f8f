package client

import (
	"context"
	"fmt"
	"net/http"

	"RRHHPlatform/internal/domain"
)

// StatusClient справочник статусов (/estados). Есть и у папелет, и у инцидентов.
type StatusClient struct {
	api *API
}

// NewStatusClient создает клиент статусов поверх указанного бэкенда
func NewStatusClient(api *API) *StatusClient {
	return &StatusClient{api: api}
}

// List GET /estados
func (c *StatusClient) List(ctx context.Context) ([]domain.Status, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/estados", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Status](raw, "data")
}

// Get GET /estados/:id
func (c *StatusClient) Get(ctx context.Context, id string) (*domain.Status, error) {
	return c.status(ctx, http.MethodGet, fmt.Sprintf("/estados/%s", id), nil)
}

// Create POST /estados
func (c *StatusClient) Create(ctx context.Context, req domain.StatusRequest) (*domain.Status, error) {
	return c.status(ctx, http.MethodPost, "/estados", req)
}

// Update PUT /estados/:id
func (c *StatusClient) Update(ctx context.Context, id string, req domain.StatusRequest) (*domain.Status, error) {
	return c.status(ctx, http.MethodPut, fmt.Sprintf("/estados/%s", id), req)
}

// Delete DELETE /estados/:id
func (c *StatusClient) Delete(ctx context.Context, id string) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Delete(ctx, fmt.Sprintf("/estados/%s", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *StatusClient) status(ctx context.Context, method, path string, body any) (*domain.Status, error) {
	raw, err := c.api.SendRaw(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	var s domain.Status
	if err := decodeObject(raw, &s, "data"); err != nil {
		return nil, err
	}
	return &s, nil
}
