package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"RRHHPlatform/internal/domain"
)

// UsersClient сотрудники биометрической системы
type UsersClient struct {
	api *API
}

// NewUsersClient создает клиент сотрудников
func NewUsersClient(api *API) *UsersClient {
	return &UsersClient{api: api}
}

// List GET /usuarios
func (c *UsersClient) List(ctx context.Context, q domain.UserQuery) (*domain.Page[domain.BiometricUser], error) {
	query := url.Values{}
	if q.DispositivoID > 0 {
		query.Set("dispositivo_id", strconv.Itoa(q.DispositivoID))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		query.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Departamento != "" {
		query.Set("departamento", q.Departamento)
	}
	if q.Activo != nil {
		query.Set("activo", strconv.FormatBool(*q.Activo))
	}

	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/usuarios", query, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[domain.BiometricUser](raw)
}

// Get GET /usuarios/:id
func (c *UsersClient) Get(ctx context.Context, id int) (*domain.BiometricUser, error) {
	return c.user(ctx, http.MethodGet, fmt.Sprintf("/usuarios/%d", id), nil)
}

// GetByUserID ищет сотрудника по DNI (GET /usuarios/user/:dni).
// Ответ бывает {data: {data: {...}}}, {data: {...}} или объектом без обертки.
func (c *UsersClient) GetByUserID(ctx context.Context, dni string) (*domain.BiometricUser, error) {
	return c.user(ctx, http.MethodGet, fmt.Sprintf("/usuarios/user/%s", dni), nil)
}

// Create POST /usuarios
func (c *UsersClient) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.BiometricUser, error) {
	return c.user(ctx, http.MethodPost, "/usuarios", req)
}

// Update PUT /usuarios/:id
func (c *UsersClient) Update(ctx context.Context, id int, req domain.UpdateUserRequest) (*domain.BiometricUser, error) {
	return c.user(ctx, http.MethodPut, fmt.Sprintf("/usuarios/%d", id), req)
}

// Delete DELETE /usuarios/:id
func (c *UsersClient) Delete(ctx context.Context, id int) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Delete(ctx, fmt.Sprintf("/usuarios/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SyncToDevice отправляет сотрудника на устройство (POST /usuarios/:id/sincronizar)
func (c *UsersClient) SyncToDevice(ctx context.Context, id int) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Post(ctx, fmt.Sprintf("/usuarios/%d/sincronizar", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SyncFromDevice загружает сотрудников с устройства (POST /usuarios/dispositivos/:id/sincronizar)
func (c *UsersClient) SyncFromDevice(ctx context.Context, deviceID int) (*domain.SyncUsersResponse, error) {
	var resp domain.SyncUsersResponse
	if err := c.api.Post(ctx, fmt.Sprintf("/usuarios/dispositivos/%d/sincronizar", deviceID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *UsersClient) user(ctx context.Context, method, path string, body any) (*domain.BiometricUser, error) {
	raw, err := c.api.SendRaw(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	var u domain.BiometricUser
	if err := decodeObject(raw, &u, "data.data", "data"); err != nil {
		return nil, err
	}
	return &u, nil
}
