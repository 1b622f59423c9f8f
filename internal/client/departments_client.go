package client

import (
	"context"
	"fmt"
	"net/http"

	"RRHHPlatform/internal/domain"
)

// DepartmentsClient подразделения. Бэкенд перенаправляет запросы без
// завершающего слеша на списке, поэтому пути используются ровно как объявлены.
type DepartmentsClient struct {
	api *API
}

// NewDepartmentsClient создает клиент подразделений
func NewDepartmentsClient(api *API) *DepartmentsClient {
	return &DepartmentsClient{api: api}
}

// List GET /departamentos/
func (c *DepartmentsClient) List(ctx context.Context) ([]domain.Department, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/departamentos/", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Department](raw, "data")
}

// Get GET /departamentos/:id
func (c *DepartmentsClient) Get(ctx context.Context, id int) (*domain.Department, error) {
	return c.department(ctx, http.MethodGet, fmt.Sprintf("/departamentos/%d", id), nil)
}

// Create POST /departamentos/
func (c *DepartmentsClient) Create(ctx context.Context, req domain.CreateDepartmentRequest) (*domain.Department, error) {
	return c.department(ctx, http.MethodPost, "/departamentos/", req)
}

// Update PUT /departamentos/:id
func (c *DepartmentsClient) Update(ctx context.Context, id int, req domain.UpdateDepartmentRequest) (*domain.Department, error) {
	return c.department(ctx, http.MethodPut, fmt.Sprintf("/departamentos/%d", id), req)
}

// Delete DELETE /departamentos/:id
func (c *DepartmentsClient) Delete(ctx context.Context, id int) error {
	return c.api.Delete(ctx, fmt.Sprintf("/departamentos/%d", id), nil)
}

// AssignBoss назначает руководителя (POST /departamentos/:id/jefe/:dni)
func (c *DepartmentsClient) AssignBoss(ctx context.Context, id int, dni string) (*domain.Department, error) {
	return c.department(ctx, http.MethodPost, fmt.Sprintf("/departamentos/%d/jefe/%s", id, dni), nil)
}

// ByUserDNI GET /departamentos/usuario/:dni
func (c *DepartmentsClient) ByUserDNI(ctx context.Context, dni string) (*domain.Department, error) {
	return c.department(ctx, http.MethodGet, fmt.Sprintf("/departamentos/usuario/%s", dni), nil)
}

// Users GET /departamentos/:id/usuarios
func (c *DepartmentsClient) Users(ctx context.Context, id int) ([]domain.BiometricUser, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, fmt.Sprintf("/departamentos/%d/usuarios", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.BiometricUser](raw, "data")
}

func (c *DepartmentsClient) department(ctx context.Context, method, path string, body any) (*domain.Department, error) {
	raw, err := c.api.SendRaw(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	var d domain.Department
	if err := decodeObject(raw, &d, "data"); err != nil {
		return nil, err
	}
	return &d, nil
}
