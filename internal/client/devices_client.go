package client

import (
	"context"
	"fmt"
	"net/http"

	"RRHHPlatform/internal/domain"
)

// DevicesClient биометрические устройства
type DevicesClient struct {
	api *API
}

// NewDevicesClient создает клиент устройств
func NewDevicesClient(api *API) *DevicesClient {
	return &DevicesClient{api: api}
}

// List GET /dispositivos
func (c *DevicesClient) List(ctx context.Context) ([]domain.Device, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/dispositivos", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Device](raw, "data")
}

// Get GET /dispositivos/:id
func (c *DevicesClient) Get(ctx context.Context, id int) (*domain.Device, error) {
	return c.device(ctx, http.MethodGet, fmt.Sprintf("/dispositivos/%d", id), nil)
}

// Create POST /dispositivos
func (c *DevicesClient) Create(ctx context.Context, req domain.DeviceRequest) (*domain.Device, error) {
	return c.device(ctx, http.MethodPost, "/dispositivos", req)
}

// Update PUT /dispositivos/:id
func (c *DevicesClient) Update(ctx context.Context, id int, req domain.DeviceRequest) (*domain.Device, error) {
	return c.device(ctx, http.MethodPut, fmt.Sprintf("/dispositivos/%d", id), req)
}

// Delete DELETE /dispositivos/:id
func (c *DevicesClient) Delete(ctx context.Context, id int) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Delete(ctx, fmt.Sprintf("/dispositivos/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestConnection POST /dispositivos/:id/test-conexion
func (c *DevicesClient) TestConnection(ctx context.Context, id int) (*domain.TestConnectionResponse, error) {
	var resp domain.TestConnectionResponse
	if err := c.api.Post(ctx, fmt.Sprintf("/dispositivos/%d/test-conexion", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Info GET /dispositivos/:id/info
func (c *DevicesClient) Info(ctx context.Context, id int) (*domain.DeviceConnectionInfo, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, fmt.Sprintf("/dispositivos/%d/info", id), nil, nil)
	if err != nil {
		return nil, err
	}
	var info domain.DeviceConnectionInfo
	if err := decodeObject(raw, &info, "info", "data"); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *DevicesClient) device(ctx context.Context, method, path string, body any) (*domain.Device, error) {
	raw, err := c.api.SendRaw(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	var d domain.Device
	if err := decodeObject(raw, &d, "data"); err != nil {
		return nil, err
	}
	return &d, nil
}
