package domain

// Дни недели в формате бэкенда
var (
	DiasSemana    = []string{"lunes", "martes", "miercoles", "jueves", "viernes", "sabado", "domingo"}
	DiasLaborales = []string{"lunes", "martes", "miercoles", "jueves", "viernes"}
	FinDeSemana   = []string{"sabado", "domingo"}
)

// Schedule рабочий график
type Schedule struct {
	ID                 int      `json:"id"`
	Nombre             string   `json:"nombre"`
	Descripcion        string   `json:"descripcion,omitempty"`
	HoraEntrada        string   `json:"hora_entrada"`
	HoraSalida         string   `json:"hora_salida"`
	DiasSemana         []string `json:"dias_semana"`
	ToleranciaEntrada  int      `json:"tolerancia_entrada"`
	ToleranciaSalida   int      `json:"tolerancia_salida"`
	Activo             bool     `json:"activo"`
	FechaCreacion      string   `json:"fecha_creacion,omitempty"`
	FechaActualizacion string   `json:"fecha_actualizacion,omitempty"`
}

// ScheduleRequest создание и обновление графика
type ScheduleRequest struct {
	Nombre            *string  `json:"nombre,omitempty"`
	Descripcion       *string  `json:"descripcion,omitempty"`
	HoraEntrada       *string  `json:"hora_entrada,omitempty"`
	HoraSalida        *string  `json:"hora_salida,omitempty"`
	DiasSemana        []string `json:"dias_semana,omitempty" validate:"omitempty,dive,oneof=lunes martes miercoles jueves viernes sabado domingo"`
	ToleranciaEntrada *int     `json:"tolerancia_entrada,omitempty"`
	ToleranciaSalida  *int     `json:"tolerancia_salida,omitempty"`
	Activo            *bool    `json:"activo,omitempty"`
}
