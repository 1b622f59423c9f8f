package domain

// IncidentType тип инцидента
type IncidentType struct {
	ID                  string `json:"id"`
	Nombre              string `json:"nombre"`
	Codigo              string `json:"codigo"`
	RequiereAprobacion  bool   `json:"requiere_aprobacion"`
	RequiereDocumento   bool   `json:"requiere_documento"`
	DescuentaSalario    bool   `json:"descuenta_salario"`
	Activo              bool   `json:"esta_activo"`
	MaxDiasAnual        *int   `json:"max_dias_anual,omitempty"`
	MaxSolicitudesAnual *int   `json:"max_solicitudes_anual,omitempty"`
	TomaDiasCalendario  *bool  `json:"toma_dias_calendario,omitempty"`
	CreadoEn            string `json:"creado_en,omitempty"`
}

// IncidentTypeRequest создание и обновление типа инцидента
type IncidentTypeRequest struct {
	Nombre              *string `json:"nombre,omitempty"`
	Codigo              *string `json:"codigo,omitempty"`
	RequiereAprobacion  *bool   `json:"requiere_aprobacion,omitempty"`
	RequiereDocumento   *bool   `json:"requiere_documento,omitempty"`
	DescuentaSalario    *bool   `json:"descuenta_salario,omitempty"`
	Activo              *bool   `json:"esta_activo,omitempty"`
	MaxDiasAnual        *int    `json:"max_dias_anual,omitempty"`
	MaxSolicitudesAnual *int    `json:"max_solicitudes_anual,omitempty"`
	TomaDiasCalendario  *bool   `json:"toma_dias_calendario,omitempty"`
}

// Incident инцидент (incidencia)
type Incident struct {
	ID               string        `json:"id"`
	EmpleadoID       string        `json:"empleado_id"`
	TipoIncidenciaID string        `json:"tipo_incidencia_id"`
	FechaInicio      string        `json:"fecha_inicio"`
	FechaFin         string        `json:"fecha_fin"`
	Descripcion      string        `json:"descripcion"`
	URLDocumento     string        `json:"url_documento"`
	EstadoID         string        `json:"estado_id"`
	AprobadoPor      *string       `json:"aprobado_por"`
	AprobadoEn       *string       `json:"aprobado_en"`
	MotivoRechazo    *string       `json:"motivo_rechazo"`
	CreadoEn         string        `json:"creado_en,omitempty"`
	TipoIncidencia   *IncidentType `json:"tipo_incidencia,omitempty"`
	Estado           *Status       `json:"estado,omitempty"`
}

// IncidentQuery фильтры списка инцидентов
type IncidentQuery struct {
	Page             int
	Limit            int
	EmpleadoID       string
	EstadoID         string
	TipoIncidenciaID string
}

// Attachment файл, отправляемый в multipart запросе
type Attachment struct {
	Filename string
	Content  []byte
}

// CreateIncidentRequest новый инцидент; документ обязателен
type CreateIncidentRequest struct {
	EmpleadoID       string `validate:"required"`
	TipoIncidenciaID string `validate:"required"`
	FechaInicio      string `validate:"required,date"`
	FechaFin         string `validate:"required,date"`
	Descripcion      string `validate:"required"`
	EstadoID         string `validate:"required"`
	Documento        Attachment
}

// UpdateIncidentRequest частичное обновление; отправляются только заданные поля
type UpdateIncidentRequest struct {
	EmpleadoID       *string
	TipoIncidenciaID *string
	FechaInicio      *string
	FechaFin         *string
	Descripcion      *string
	EstadoID         *string
	Documento        *Attachment
}

// ApproveIncidentRequest одобрение инцидента
type ApproveIncidentRequest struct {
	AprobadoPor string `json:"aprobado_por" validate:"required"`
}

// RejectIncidentRequest отклонение инцидента
type RejectIncidentRequest struct {
	MotivoRechazo string `json:"motivo_rechazo" validate:"required"`
}
