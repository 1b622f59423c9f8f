package domain

// Форматы выгрузки сохраненных отчетов
const (
	FormatPDF   = "PDF"
	FormatExcel = "EXCEL"
)

// ReportExportRequest параметры выгрузки отчета
type ReportExportRequest struct {
	Mes     string   `json:"mes" validate:"required"`
	Anio    string   `json:"anio" validate:"required,len=4"`
	Area    string   `json:"area,omitempty"`
	UserIDs []string `json:"user_ids"`
}

// ReportType тип отчета
type ReportType struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Activo      bool   `json:"activo"`
	Code        string `json:"code,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ReportTypeRequest создание и обновление типа отчета
type ReportTypeRequest struct {
	Nombre      string `json:"nombre" validate:"required"`
	Descripcion string `json:"descripcion"`
	Activo      bool   `json:"activo"`
}

// GeneratedReport сохраненный отчет
type GeneratedReport struct {
	ID              int    `json:"id"`
	ReportTypeID    *int   `json:"report_type_id,omitempty"`
	ReportTypeName  string `json:"report_type_name,omitempty"`
	UsuarioID       int    `json:"usuario_id"`
	FechaGeneracion string `json:"fecha_generacion"`
	Filtros         any    `json:"filtros,omitempty"`
	Parametros      any    `json:"parametros,omitempty"`
	Area            string `json:"area,omitempty"`
	ArchivoPath     string `json:"archivo_path,omitempty"`
	Formato         string `json:"formato"`
	Estado          string `json:"estado"`
}

// MetricsTotals сводные показатели посещаемости
type MetricsTotals struct {
	Puntual     int     `json:"puntual"`
	Tardanzas   int     `json:"tardanzas"`
	Faltas      int     `json:"faltas"`
	HorasExtras float64 `json:"horas_extras"`
}

// AttendanceMetrics ответ GET /asistencias/reporte сервиса отчетов
type AttendanceMetrics struct {
	Rango struct {
		Inicio string `json:"inicio"`
		Fin    string `json:"fin"`
	} `json:"rango"`
	Totales        MetricsTotals    `json:"totales"`
	TotalEmpleados int              `json:"total_empleados"`
	Data           []map[string]any `json:"data"`
}
