package domain

// Типы отметок (punch)
const (
	PunchNormal         = 0
	PunchOvertime       = 1
	PunchEarlyDeparture = 2
	PunchLateArrival    = 3
)

// PunchLabels названия типов отметок
var PunchLabels = map[int]string{
	PunchNormal:         "Marcación Normal",
	PunchOvertime:       "Horas Extras",
	PunchEarlyDeparture: "Salida Temprana",
	PunchLateArrival:    "Llegada Tarde",
}

// StatusLabels названия статусов отметки
var StatusLabels = map[int]string{
	0: "Check-in / Check-out",
}

// Attendance отметка посещаемости
type Attendance struct {
	ID                  int    `json:"id"`
	UserID              string `json:"user_id"`
	DispositivoID       int    `json:"dispositivo_id"`
	Timestamp           string `json:"timestamp"`
	Status              int    `json:"status"`
	Punch               int    `json:"punch"`
	Sincronizado        bool   `json:"sincronizado"`
	FechaSincronizacion string `json:"fecha_sincronizacion,omitempty"`
}

// AttendanceQuery фильтры списка отметок
type AttendanceQuery struct {
	FechaInicio   string
	FechaFin      string
	UserID        string
	DispositivoID int
	Limit         int
	Offset        int
}

// DateRange диапазон дат YYYY-MM-DD
type DateRange struct {
	FechaInicio string `validate:"required,date"`
	FechaFin    string `validate:"required,date"`
}

// AttendanceCount ответ счетчика отметок
type AttendanceCount struct {
	Total int `json:"total"`
}

// SyncAttendanceResponse результат синхронизации одного устройства
type SyncAttendanceResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	RegistrosNuevos  int    `json:"registros_nuevos"`
	RegistrosTotales int    `json:"registros_totales"`
	DispositivoID    int    `json:"dispositivo_id"`
}

// DeviceSyncResult результат по устройству при полной синхронизации
type DeviceSyncResult struct {
	DispositivoID     int    `json:"dispositivo_id"`
	DispositivoNombre string `json:"dispositivo_nombre"`
	Success           bool   `json:"success"`
	RegistrosNuevos   int    `json:"registros_nuevos"`
	RegistrosTotales  int    `json:"registros_totales"`
}

// SyncAllResponse результат синхронизации всех устройств
type SyncAllResponse struct {
	TotalDispositivos int                `json:"total_dispositivos"`
	Resultados        []DeviceSyncResult `json:"resultados"`
}

// RegisterAttendanceRequest ручная отметка
type RegisterAttendanceRequest struct {
	Tipo       string `json:"tipo" validate:"required"`
	EmpleadoID string `json:"empleado_id" validate:"required"`
	FechaHora  string `json:"fecha_hora" validate:"required"`
}

// UserDailyReport дневной отчет сотрудника
type UserDailyReport struct {
	Resumen map[string]any   `json:"resumen"`
	Detalle []map[string]any `json:"detalle"`
}
