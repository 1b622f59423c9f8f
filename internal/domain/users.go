package domain

// Уровни привилегий пользователя биометрического устройства
const (
	PrivilegeUser  = 0
	PrivilegeAdmin = 14
)

// PrivilegeLabel возвращает название уровня привилегий
func PrivilegeLabel(p int) string {
	switch p {
	case PrivilegeAdmin:
		return "Administrador"
	case PrivilegeUser:
		return "Usuario"
	default:
		return "Desconocido"
	}
}

// BiometricUser сотрудник в биометрической системе
type BiometricUser struct {
	ID            int    `json:"id"`
	UserID        string `json:"user_id"`
	Nombre        string `json:"nombre"`
	Privilegio    int    `json:"privilegio"`
	DispositivoID int    `json:"dispositivo_id"`
	Email         string `json:"email,omitempty"`
	Telefono      string `json:"telefono,omitempty"`
	Departamento  string `json:"departamento,omitempty"`
	Cargo         string `json:"cargo,omitempty"`
	FechaCreacion string `json:"fecha_creacion,omitempty"`
}

// CreateUserRequest данные нового сотрудника
type CreateUserRequest struct {
	UserID        string `json:"user_id" validate:"required"`
	Nombre        string `json:"nombre" validate:"required"`
	Privilegio    int    `json:"privilegio" validate:"oneof=0 14"`
	Password      string `json:"password,omitempty"`
	DispositivoID int    `json:"dispositivo_id" validate:"required"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Telefono      string `json:"telefono,omitempty"`
	Departamento  string `json:"departamento,omitempty"`
	Cargo         string `json:"cargo,omitempty"`
}

// UpdateUserRequest частичное обновление сотрудника
type UpdateUserRequest struct {
	UserID        *string `json:"user_id,omitempty"`
	Nombre        *string `json:"nombre,omitempty"`
	Privilegio    *int    `json:"privilegio,omitempty"`
	Password      *string `json:"password,omitempty"`
	DispositivoID *int    `json:"dispositivo_id,omitempty"`
	Email         *string `json:"email,omitempty"`
	Telefono      *string `json:"telefono,omitempty"`
	Departamento  *string `json:"departamento,omitempty"`
	Cargo         *string `json:"cargo,omitempty"`
}

// UserQuery фильтры списка сотрудников
type UserQuery struct {
	DispositivoID int
	Limit         int
	Offset        int
	Departamento  string
	Activo        *bool
}

// SyncUsersResponse результат синхронизации сотрудников с устройства
type SyncUsersResponse struct {
	Success              bool   `json:"success"`
	Message              string `json:"message"`
	UsuariosNuevos       int    `json:"usuarios_nuevos"`
	UsuariosActualizados int    `json:"usuarios_actualizados"`
}
