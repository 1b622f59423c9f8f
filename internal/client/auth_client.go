package client

import (
	"context"
	"fmt"
	"net/http"

	"RRHHPlatform/internal/domain"
)

// DefaultProfileName имя, если профиль не содержит имени
const DefaultProfileName = "Usuario"

// AuthClient клиент сервиса авторизации: вход, профиль, учетные записи
type AuthClient struct {
	api *API
}

// NewAuthClient создает клиент авторизации
func NewAuthClient(api *API) *AuthClient {
	return &AuthClient{api: api}
}

// Login выполняет вход (POST /auth/login)
func (c *AuthClient) Login(ctx context.Context, creds domain.LoginCredentials) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.api.Post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register регистрирует учетную запись (POST /auth/register)
func (c *AuthClient) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.api.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout завершает сессию на сервере (POST /auth/logout)
func (c *AuthClient) Logout(ctx context.Context) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Post(ctx, "/auth/logout", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangePassword меняет пароль (POST /auth/change-password)
func (c *AuthClient) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Post(ctx, "/auth/change-password", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile возвращает профиль текущего пользователя (GET /auth/profile).
// Ответ приходит как {user: {...}} или как объект пользователя без обертки.
func (c *AuthClient) Profile(ctx context.Context) (*domain.Profile, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/auth/profile", nil, nil)
	if err != nil {
		return nil, err
	}

	user, err := decodeMap(raw, "user")
	if err != nil {
		return nil, err
	}
	return NormalizeProfile(user), nil
}

// NormalizeProfile приводит объект пользователя сервиса авторизации к Profile
func NormalizeProfile(user map[string]any) *domain.Profile {
	p := &domain.Profile{
		ID:     lookupString(user, "id"),
		DNI:    lookupString(user, "usuario", "dni"),
		Nombre: lookupString(user, "nombre"),
		Correo: lookupString(user, "correo_electronico", "email"),
		Rol:    roleName(user["rol"]),
		Cargo:  lookupString(user, "cargo"),
		Raw:    user,
	}
	if p.Nombre == "" {
		p.Nombre = DefaultProfileName
	}
	return p
}

// roleName возвращает имя роли из объекта {nombre} или строки
func roleName(v any) string {
	switch rol := v.(type) {
	case string:
		return rol
	case map[string]any:
		if name, ok := rol["nombre"].(string); ok {
			return name
		}
	}
	return ""
}

// Verify проверяет токен (GET /auth/verify)
func (c *AuthClient) Verify(ctx context.Context) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.api.Get(ctx, "/auth/verify", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUsers возвращает учетные записи (GET /users)
func (c *AuthClient) ListUsers(ctx context.Context) ([]domain.AuthUser, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/users", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.AuthUser](raw, "data", "users")
}

// UpdateUser обновляет учетную запись (PUT /users/:id)
func (c *AuthClient) UpdateUser(ctx context.Context, id string, req domain.UpdateAuthUserRequest) (*domain.AuthUser, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodPut, fmt.Sprintf("/users/%s", id), nil, req)
	if err != nil {
		return nil, err
	}
	var user domain.AuthUser
	if err := decodeObject(raw, &user, "data", "user"); err != nil {
		return nil, err
	}
	return &user, nil
}

// LockStatus возвращает состояние блокировки (GET /users/:id/lock-status)
func (c *AuthClient) LockStatus(ctx context.Context, id string) (*domain.LockStatus, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, fmt.Sprintf("/users/%s/lock-status", id), nil, nil)
	if err != nil {
		return nil, err
	}
	var status domain.LockStatus
	if err := decodeObject(raw, &status, "data"); err != nil {
		return nil, err
	}
	return &status, nil
}

// Unlock снимает блокировку (POST /users/:id/unlock)
func (c *AuthClient) Unlock(ctx context.Context, id string) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Post(ctx, fmt.Sprintf("/users/%s/unlock", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
