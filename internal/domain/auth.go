package domain

// Permission право доступа в сервисе авторизации (не путать с папелетой)
type Permission struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

// UserPermission связь пользователя с правом
type UserPermission struct {
	Permiso Permission `json:"permiso"`
}

// AuthUser учетная запись сервиса авторизации
type AuthUser struct {
	ID               string           `json:"id"`
	Usuario          string           `json:"usuario"`
	Correo           string           `json:"correo_electronico"`
	Activo           bool             `json:"esta_activo"`
	CreadoEn         string           `json:"creado_en,omitempty"`
	ActualizadoEn    string           `json:"actualizado_en,omitempty"`
	Rol              *RoleRef         `json:"rol,omitempty"`
	UsuarioPermisos  []UserPermission `json:"usuario_permisos,omitempty"`
	Bloqueado        *bool            `json:"bloqueado,omitempty"`
	IntentosFallidos *int             `json:"intentos_fallidos,omitempty"`
}

// LoginCredentials учетные данные для входа
type LoginCredentials struct {
	Correo     string `json:"correo_electronico" validate:"required,email"`
	Contrasena string `json:"contrasena" validate:"required"`
}

// AuthResponse ответ на вход и регистрацию
type AuthResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Token   string    `json:"token,omitempty"`
	User    *AuthUser `json:"user,omitempty"`
}

// RegisterRequest данные регистрации
type RegisterRequest struct {
	Usuario    string `json:"usuario" validate:"required"`
	Correo     string `json:"correo_electronico" validate:"required,email"`
	Contrasena string `json:"contrasena" validate:"required,min=6"`
	RolID      string `json:"rol_id,omitempty"`
}

// ChangePasswordRequest смена пароля
type ChangePasswordRequest struct {
	Actual string `json:"contrasena_actual" validate:"required"`
	Nueva  string `json:"contrasena_nueva" validate:"required,min=6"`
}

// UpdateAuthUserRequest частичное обновление учетной записи
type UpdateAuthUserRequest struct {
	Usuario *string `json:"usuario,omitempty"`
	Correo  *string `json:"correo_electronico,omitempty"`
	Activo  *bool   `json:"esta_activo,omitempty"`
	RolID   *string `json:"rol_id,omitempty"`
}

// LockStatus состояние блокировки учетной записи
type LockStatus struct {
	Bloqueado        bool   `json:"bloqueado"`
	IntentosFallidos int    `json:"intentos_fallidos"`
	BloqueadoHasta   string `json:"bloqueado_hasta,omitempty"`
}

// Role роль сервиса авторизации
type Role struct {
	ID          string       `json:"id"`
	Nombre      string       `json:"nombre"`
	Descripcion string       `json:"descripcion,omitempty"`
	Permisos    []Permission `json:"permisos,omitempty"`
}

// RoleRequest создание и обновление роли
type RoleRequest struct {
	Nombre      string   `json:"nombre,omitempty"`
	Descripcion string   `json:"descripcion,omitempty"`
	Permisos    []string `json:"permisos,omitempty"`
}

// PermissionRequest создание и обновление права
type PermissionRequest struct {
	Nombre      string `json:"nombre,omitempty"`
	Descripcion string `json:"descripcion,omitempty"`
}

// Profile профиль текущего пользователя, нормализованный из /auth/profile.
// Raw хранит исходный объект пользователя без изменений.
type Profile struct {
	ID     string         `json:"id,omitempty"`
	DNI    string         `json:"dni"`
	Nombre string         `json:"nombre"`
	Correo string         `json:"correo"`
	Rol    string         `json:"rol"`
	Cargo  string         `json:"cargo,omitempty"`
	Raw    map[string]any `json:"raw,omitempty"`
}
