package client

import (
	"context"
	"fmt"
	"net/http"

	"RRHHPlatform/internal/domain"
)

// RolesClient роли и права сервиса авторизации
type RolesClient struct {
	api *API
}

// NewRolesClient создает клиент ролей
func NewRolesClient(api *API) *RolesClient {
	return &RolesClient{api: api}
}

// ListPermissions GET /permisos
func (c *RolesClient) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/permisos", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Permission](raw, "data", "permisos")
}

// GetPermission GET /permisos/:id
func (c *RolesClient) GetPermission(ctx context.Context, id string) (*domain.Permission, error) {
	return c.permission(ctx, http.MethodGet, fmt.Sprintf("/permisos/%s", id), nil)
}

// CreatePermission POST /permisos
func (c *RolesClient) CreatePermission(ctx context.Context, req domain.PermissionRequest) (*domain.Permission, error) {
	return c.permission(ctx, http.MethodPost, "/permisos", req)
}

// UpdatePermission PUT /permisos/:id
func (c *RolesClient) UpdatePermission(ctx context.Context, id string, req domain.PermissionRequest) (*domain.Permission, error) {
	return c.permission(ctx, http.MethodPut, fmt.Sprintf("/permisos/%s", id), req)
}

// DeletePermission DELETE /permisos/:id
func (c *RolesClient) DeletePermission(ctx context.Context, id string) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Delete(ctx, fmt.Sprintf("/permisos/%s", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RolesClient) permission(ctx context.Context, method, path string, body any) (*domain.Permission, error) {
	raw, err := c.api.SendRaw(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	var p domain.Permission
	if err := decodeObject(raw, &p, "data", "permiso"); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListRoles GET /roles
func (c *RolesClient) ListRoles(ctx context.Context) ([]domain.Role, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/roles", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Role](raw, "data", "roles")
}

// GetRole GET /roles/:id
func (c *RolesClient) GetRole(ctx context.Context, id string) (*domain.Role, error) {
	return c.role(ctx, http.MethodGet, fmt.Sprintf("/roles/%s", id), nil)
}

// CreateRole POST /roles
func (c *RolesClient) CreateRole(ctx context.Context, req domain.RoleRequest) (*domain.Role, error) {
	return c.role(ctx, http.MethodPost, "/roles", req)
}

// UpdateRole PUT /roles/:id
func (c *RolesClient) UpdateRole(ctx context.Context, id string, req domain.RoleRequest) (*domain.Role, error) {
	return c.role(ctx, http.MethodPut, fmt.Sprintf("/roles/%s", id), req)
}

// DeleteRole DELETE /roles/:id
func (c *RolesClient) DeleteRole(ctx context.Context, id string) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Delete(ctx, fmt.Sprintf("/roles/%s", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RolesClient) role(ctx context.Context, method, path string, body any) (*domain.Role, error) {
	raw, err := c.api.SendRaw(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	var r domain.Role
	if err := decodeObject(raw, &r, "data", "rol"); err != nil {
		return nil, err
	}
	return &r, nil
}
