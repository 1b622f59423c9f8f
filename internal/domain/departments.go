package domain

// Department подразделение
type Department struct {
	ID            int     `json:"id"`
	Nombre        string  `json:"nombre"`
	Descripcion   string  `json:"descripcion"`
	JefeID        *string `json:"jefe_id"`
	FechaCreacion string  `json:"fecha_creacion,omitempty"`
}

// CreateDepartmentRequest новое подразделение
type CreateDepartmentRequest struct {
	Nombre      string `json:"nombre" validate:"required"`
	Descripcion string `json:"descripcion"`
}

// UpdateDepartmentRequest частичное обновление подразделения
type UpdateDepartmentRequest struct {
	Nombre      *string `json:"nombre,omitempty"`
	Descripcion *string `json:"descripcion,omitempty"`
	JefeID      *string `json:"jefe_id,omitempty"`
}
