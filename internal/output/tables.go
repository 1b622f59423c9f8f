package output

import (
	"sort"
	"strconv"
	"strings"

	"RRHHPlatform/internal/domain"
)

// UsersTable создает таблицу сотрудников биометрической системы
func UsersTable(users []domain.BiometricUser) *Table {
	table := NewTable("ID", "DNI", "NOMBRE", "PRIVILEGIO", "DEPARTAMENTO", "CARGO", "DISPOSITIVO")
	for _, u := range users {
		style := StyleDefault
		if u.Privilegio == domain.PrivilegeAdmin {
			style = StyleInfo
		}
		table.AddRowWithStyle(style,
			strconv.Itoa(u.ID),
			u.UserID,
			u.Nombre,
			domain.PrivilegeLabel(u.Privilegio),
			orDash(u.Departamento),
			orDash(u.Cargo),
			strconv.Itoa(u.DispositivoID),
		)
	}
	return table
}

// AuthUsersTable создает таблицу учетных записей
func AuthUsersTable(users []domain.AuthUser) *Table {
	table := NewTable("ID", "USUARIO", "CORREO", "ROL", "ESTADO")
	for _, u := range users {
		status := ActiveLabel(u.Activo)
		if u.Bloqueado != nil && *u.Bloqueado {
			status = "Bloqueado"
		}
		table.AddRowWithStyle(StatusStyle(status), u.ID, u.Usuario, u.Correo, orDash(u.Rol.String()), status)
	}
	return table
}

// ProfileDetails описывает текущего пользователя
func ProfileDetails(p *domain.Profile) *Details {
	d := NewDetails()
	if p == nil {
		return d.AddStyled(StyleWarning, "Sesión", "no iniciada")
	}
	return d.Add("ID", p.ID).
		Add("DNI", p.DNI).
		Add("Nombre", p.Nombre).
		Add("Correo", p.Correo).
		Add("Rol", p.Rol).
		Add("Cargo", p.Cargo)
}

// RolesTable создает таблицу ролей
func RolesTable(roles []domain.Role) *Table {
	table := NewTable("ID", "NOMBRE", "DESCRIPCIÓN", "PERMISOS")
	for _, r := range roles {
		names := make([]string, 0, len(r.Permisos))
		for _, p := range r.Permisos {
			names = append(names, p.Nombre)
		}
		table.AddRow(r.ID, r.Nombre, orDash(r.Descripcion), orDash(strings.Join(names, ", ")))
	}
	return table
}

// PermissionsTable создает таблицу прав
func PermissionsTable(perms []domain.Permission) *Table {
	table := NewTable("ID", "NOMBRE", "DESCRIPCIÓN")
	for _, p := range perms {
		table.AddRow(p.ID, p.Nombre, orDash(p.Descripcion))
	}
	return table
}

// AttendanceTable создает таблицу отметок
func AttendanceTable(records []domain.Attendance) *Table {
	table := NewTable("ID", "DNI", "FECHA/HORA", "TIPO", "ESTADO", "DISPOSITIVO")
	for _, a := range records {
		style := StyleDefault
		switch a.Punch {
		case domain.PunchLateArrival, domain.PunchEarlyDeparture:
			style = StyleWarning
		case domain.PunchOvertime:
			style = StyleInfo
		}
		table.AddRowWithStyle(style,
			strconv.Itoa(a.ID),
			a.UserID,
			a.Timestamp,
			PunchLabel(a.Punch),
			AttendanceStatusLabel(a.Status),
			strconv.Itoa(a.DispositivoID),
		)
	}
	return table
}

// PunchLabel возвращает название типа отметки
func PunchLabel(punch int) string {
	if label, ok := domain.PunchLabels[punch]; ok {
		return label
	}
	return "Tipo " + strconv.Itoa(punch)
}

// AttendanceStatusLabel возвращает название статуса отметки
func AttendanceStatusLabel(status int) string {
	if label, ok := domain.StatusLabels[status]; ok {
		return label
	}
	return "Estado " + strconv.Itoa(status)
}

// DevicesTable создает таблицу устройств
func DevicesTable(devices []domain.Device) *Table {
	table := NewTable("ID", "NOMBRE", "IP", "PUERTO", "UBICACIÓN", "ESTADO")
	for _, d := range devices {
		status := ActiveLabel(d.Activo)
		table.AddRowWithStyle(StatusStyle(status),
			strconv.Itoa(d.ID), d.Nombre, d.IPAddress, strconv.Itoa(d.Puerto), orDash(d.Ubicacion), status)
	}
	return table
}

// ConnectionDetails результат проверки связи с устройством
func ConnectionDetails(r *domain.TestConnectionResponse) *Details {
	d := NewDetails()
	if r.Success {
		d.AddStyled(StyleSuccess, "Conexión", "✓ "+r.Message)
	} else {
		d.AddStyled(StyleError, "Conexión", "✗ "+r.Message)
	}
	if r.Info != nil {
		d.Add("Número de serie", r.Info.SerialNumber).
			Add("Firmware", r.Info.FirmwareVersion).
			Add("Plataforma", r.Info.Platform).
			Add("Hora del dispositivo", r.Info.HoraDispositivo)
	}
	return d
}

// SyncResultsTable результаты синхронизации отметок по устройствам
func SyncResultsTable(resp *domain.SyncAllResponse) *Table {
	table := NewTable("DISPOSITIVO", "NOMBRE", "RESULTADO", "NUEVOS", "TOTALES")
	if resp == nil {
		return table
	}
	for _, r := range resp.Resultados {
		result, style := "✓ OK", StyleSuccess
		if !r.Success {
			result, style = "✗ Error", StyleError
		}
		table.AddRowWithStyle(style,
			strconv.Itoa(r.DispositivoID), r.DispositivoNombre, result,
			strconv.Itoa(r.RegistrosNuevos), strconv.Itoa(r.RegistrosTotales))
	}
	return table
}

// SchedulesTable создает таблицу графиков
func SchedulesTable(schedules []domain.Schedule) *Table {
	table := NewTable("ID", "NOMBRE", "ENTRADA", "SALIDA", "DÍAS", "TOLERANCIA", "ESTADO")
	for _, s := range schedules {
		status := ActiveLabel(s.Activo)
		table.AddRowWithStyle(StatusStyle(status),
			strconv.Itoa(s.ID),
			s.Nombre,
			s.HoraEntrada,
			s.HoraSalida,
			DaysLabel(s.DiasSemana),
			strconv.Itoa(s.ToleranciaEntrada)+"/"+strconv.Itoa(s.ToleranciaSalida)+" min",
			status,
		)
	}
	return table
}

// DaysLabel сворачивает список дней: полная неделя, будни и выходные
// показываются одним словом, остальное перечисляется в порядке недели.
func DaysLabel(days []string) string {
	switch {
	case len(days) == 0:
		return "-"
	case sameDays(days, domain.DiasSemana):
		return "Todos los días"
	case sameDays(days, domain.DiasLaborales):
		return "Lunes a viernes"
	case sameDays(days, domain.FinDeSemana):
		return "Fin de semana"
	}

	order := make(map[string]int, len(domain.DiasSemana))
	for i, d := range domain.DiasSemana {
		order[d] = i
	}
	sorted := append([]string(nil), days...)
	sort.SliceStable(sorted, func(i, j int) bool {
		oi, iok := order[sorted[i]]
		oj, jok := order[sorted[j]]
		if !iok || !jok {
			return iok && !jok
		}
		return oi < oj
	})
	return strings.Join(sorted, ", ")
}

func sameDays(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, d := range a {
		set[strings.ToLower(d)] = struct{}{}
	}
	for _, d := range b {
		if _, ok := set[d]; !ok {
			return false
		}
	}
	return len(set) == len(b)
}

// DepartmentsTable создает таблицу подразделений
func DepartmentsTable(departments []domain.Department) *Table {
	table := NewTable("ID", "NOMBRE", "DESCRIPCIÓN", "JEFE")
	for _, d := range departments {
		jefe := ""
		if d.JefeID != nil {
			jefe = *d.JefeID
		}
		table.AddRow(strconv.Itoa(d.ID), d.Nombre, orDash(d.Descripcion), orDash(jefe))
	}
	return table
}

// PermitsTable создает таблицу папелет. Колонка FIRMAS перечисляет роли,
// которые уже подписали (обычной или цифровой подписью).
func PermitsTable(permits []domain.Permit) *Table {
	table := NewTable("ID", "EMPLEADO", "TIPO", "ESTADO", "SALIDA", "RETORNO", "FIRMAS")
	for i := range permits {
		p := &permits[i]
		tipo := p.TipoPermisoID
		if p.TipoPermiso != nil && p.TipoPermiso.Nombre != "" {
			tipo = p.TipoPermiso.Nombre
		}
		status := p.StatusName()
		table.AddRowWithStyle(StatusStyle(status),
			p.ID,
			p.EmpleadoID,
			tipo,
			orDash(status),
			p.FechaHoraInicio,
			orDash(deref(p.FechaHoraFin)),
			orDash(strings.Join(SignedRoles(p), ", ")),
		)
	}
	return table
}

// SignedRoles роли, чья подпись стоит на папелете
func SignedRoles(p *domain.Permit) []string {
	signed := make([]string, 0, len(domain.SignerRoles))
	for _, role := range domain.SignerRoles {
		if p.IsSigned(role) {
			signed = append(signed, string(role))
		}
	}
	return signed
}

// PermitDetails подробности одной папелеты
func PermitDetails(p *domain.Permit) *Details {
	d := NewDetails().
		Add("ID", p.ID).
		Add("Empleado", p.EmpleadoID)
	if p.Solicitante != nil {
		d.Add("Solicitante", p.Solicitante.Nombre).Add("Cargo", p.Solicitante.Cargo)
	}
	if p.TipoPermiso != nil {
		d.Add("Tipo", p.TipoPermiso.Nombre)
	}
	status := p.StatusName()
	d.AddStyled(StatusStyle(status), "Estado", status).
		Add("Salida", p.FechaHoraInicio).
		Add("Retorno", deref(p.FechaHoraFin)).
		Add("Motivo", p.Motivo).
		Add("Justificación", deref(p.Justificacion)).
		Add("Institución visitada", deref(p.InstitucionVisitada))
	for _, role := range domain.SignerRoles {
		if p.IsSigned(role) {
			d.AddStyled(StyleSuccess, "Firma "+string(role), "✓ firmado")
		} else {
			d.Add("Firma "+string(role), "")
		}
	}
	return d
}

// PermitTypesTable создает таблицу типов папелет
func PermitTypesTable(types []domain.PermitType) *Table {
	table := NewTable("ID", "CÓDIGO", "NOMBRE", "MÁX. HORAS", "FIRMA INSTITUCIÓN", "ESTADO")
	for _, t := range types {
		maxHours := ""
		if t.TiempoMaximoHoras != nil {
			maxHours = strconv.FormatFloat(*t.TiempoMaximoHoras, 'f', -1, 64)
		}
		status := ActiveLabel(t.Activo)
		table.AddRowWithStyle(StatusStyle(status),
			t.ID, t.Codigo, t.Nombre, orDash(maxHours), YesNo(t.RequiereFirmaInstitucion), status)
	}
	return table
}

// StatusesTable создает таблицу статусов
func StatusesTable(statuses []domain.Status) *Table {
	table := NewTable("ID", "CÓDIGO", "NOMBRE", "DESCRIPCIÓN")
	for _, s := range statuses {
		table.AddRowWithStyle(StatusStyle(s.Nombre), s.ID, orDash(s.Codigo), s.Nombre, orDash(s.Descripcion))
	}
	return table
}

// IncidentsTable создает таблицу инцидентов
func IncidentsTable(incidents []domain.Incident) *Table {
	table := NewTable("ID", "EMPLEADO", "TIPO", "DESDE", "HASTA", "ESTADO")
	for _, inc := range incidents {
		tipo := inc.TipoIncidenciaID
		if inc.TipoIncidencia != nil && inc.TipoIncidencia.Nombre != "" {
			tipo = inc.TipoIncidencia.Nombre
		}
		status := inc.EstadoID
		if inc.Estado != nil && inc.Estado.Nombre != "" {
			status = inc.Estado.Nombre
		}
		table.AddRowWithStyle(StatusStyle(status), inc.ID, inc.EmpleadoID, tipo, inc.FechaInicio, inc.FechaFin, status)
	}
	return table
}

// IncidentTypesTable создает таблицу типов инцидентов
func IncidentTypesTable(types []domain.IncidentType) *Table {
	table := NewTable("ID", "CÓDIGO", "NOMBRE", "APROBACIÓN", "DOCUMENTO", "DESCUENTA", "ESTADO")
	for _, t := range types {
		status := ActiveLabel(t.Activo)
		table.AddRowWithStyle(StatusStyle(status),
			t.ID, t.Codigo, t.Nombre,
			YesNo(t.RequiereAprobacion), YesNo(t.RequiereDocumento), YesNo(t.DescuentaSalario),
			status)
	}
	return table
}

// ReportTypesTable создает таблицу типов отчетов
func ReportTypesTable(types []domain.ReportType) *Table {
	table := NewTable("ID", "NOMBRE", "DESCRIPCIÓN", "ESTADO")
	for _, t := range types {
		status := ActiveLabel(t.Activo)
		table.AddRowWithStyle(StatusStyle(status), strconv.Itoa(t.ID), t.Nombre, orDash(t.Descripcion), status)
	}
	return table
}

// GeneratedReportsTable создает таблицу сформированных отчетов
func GeneratedReportsTable(reports []domain.GeneratedReport) *Table {
	table := NewTable("ID", "TIPO", "FORMATO", "ÁREA", "GENERADO", "ESTADO")
	for _, r := range reports {
		table.AddRowWithStyle(StatusStyle(r.Estado),
			strconv.Itoa(r.ID), orDash(r.ReportTypeName), r.Formato, orDash(r.Area), r.FechaGeneracion, orDash(r.Estado))
	}
	return table
}

// MetricsDetails сводка метрик посещаемости за период
func MetricsDetails(m *domain.AttendanceMetrics) *Details {
	d := NewDetails()
	if m == nil {
		return d
	}
	rango := ""
	if m.Rango.Inicio != "" || m.Rango.Fin != "" {
		rango = m.Rango.Inicio + " - " + m.Rango.Fin
	}
	return d.Add("Periodo", rango).
		Add("Empleados", strconv.Itoa(m.TotalEmpleados)).
		AddStyled(StyleSuccess, "Puntual", strconv.Itoa(m.Totales.Puntual)).
		AddStyled(StyleWarning, "Tardanzas", strconv.Itoa(m.Totales.Tardanzas)).
		AddStyled(StyleError, "Faltas", strconv.Itoa(m.Totales.Faltas)).
		AddStyled(StyleInfo, "Horas extras", strconv.FormatFloat(m.Totales.HorasExtras, 'f', -1, 64)).
		Add("Registros", strconv.Itoa(len(m.Data)))
}

// ActiveLabel "Activo" или "Inactivo"
func ActiveLabel(active bool) string {
	if active {
		return "Activo"
	}
	return "Inactivo"
}

// YesNo "Sí" или "No"
func YesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
