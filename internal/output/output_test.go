package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"RRHHPlatform/internal/client"
	"RRHHPlatform/internal/domain"
	pkgerrors "RRHHPlatform/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want FormatType
		err  bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTable_Render(t *testing.T) {
	table := NewTable("ID", "NOMBRE")
	table.AddRow("1", "Ana")
	table.AddRow("10", "Luis Pérez")

	expected := "ID  NOMBRE\n" +
		"--  ------\n" +
		"1   Ana\n" +
		"10  Luis Pérez"
	assert.Equal(t, expected, table.String())
}

func TestTable_Empty(t *testing.T) {
	assert.Equal(t, NoData, NewTable("ID").String())
}

func TestTable_Colors(t *testing.T) {
	table := NewTable("ID", "ESTADO")
	table.AddRowWithStyle(StyleError, "1", "Rechazado")
	table.AddRow("2", "Otro")

	lines := strings.Split(table.Render(true), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], colorHeader))
	assert.True(t, strings.HasPrefix(lines[1], colorSeparator))
	assert.True(t, strings.HasPrefix(lines[2], colorError))
	assert.True(t, strings.HasSuffix(lines[2], colorReset))
	assert.Equal(t, "2   Otro", lines[3])
}

func TestDetails(t *testing.T) {
	d := NewDetails().Add("Nombre", "Ana").Add("Cargo", "")

	rendered := d.Table().String()
	assert.Contains(t, rendered, "Nombre  Ana")
	assert.Contains(t, rendered, "Cargo   -")
}

func TestStatusStyle(t *testing.T) {
	tests := map[string]RowStyle{
		"Aprobado":           StyleSuccess,
		"Activo":             StyleSuccess,
		"Inactivo":           StyleError,
		"RECHAZADO":          StyleError,
		"Pendiente de firma": StyleWarning,
		"":                   StyleDefault,
	}
	for status, want := range tests {
		assert.Equal(t, want, StatusStyle(status), status)
	}
	assert.Equal(t, "✓", StatusIcon("aprobado"))
	assert.Equal(t, "✗", StatusIcon("cancelado"))
	assert.Equal(t, "⚠", StatusIcon("pendiente"))
}

func TestDaysLabel(t *testing.T) {
	assert.Equal(t, "-", DaysLabel(nil))
	assert.Equal(t, "Todos los días", DaysLabel(domain.DiasSemana))
	assert.Equal(t, "Lunes a viernes", DaysLabel([]string{"viernes", "jueves", "miercoles", "martes", "lunes"}))
	assert.Equal(t, "Fin de semana", DaysLabel([]string{"domingo", "sabado"}))
	assert.Equal(t, "lunes, miercoles, sabado", DaysLabel([]string{"sabado", "lunes", "miercoles"}))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Llegada Tarde", PunchLabel(domain.PunchLateArrival))
	assert.Equal(t, "Tipo 9", PunchLabel(9))
	assert.Equal(t, "Check-in / Check-out", AttendanceStatusLabel(0))
	assert.Equal(t, "Estado 4", AttendanceStatusLabel(4))
}

func TestUsersTable(t *testing.T) {
	table := UsersTable([]domain.BiometricUser{
		{ID: 1, UserID: "70123456", Nombre: "Ana", Privilegio: domain.PrivilegeAdmin, DispositivoID: 2},
	})

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"1", "70123456", "Ana", "Administrador", "-", "-", "2"}, table.Rows[0].Cells)
	assert.Equal(t, StyleInfo, table.Rows[0].Style)
}

func TestPermitsTable(t *testing.T) {
	fin := "2026-10-17T12:00:00"
	table := PermitsTable([]domain.Permit{
		{
			ID:               "p1",
			EmpleadoID:       "e1",
			TipoPermisoID:    "t1",
			TipoPermiso:      &domain.PermitType{Nombre: "Personal"},
			Estado:           &domain.Status{Nombre: "Aprobado"},
			FechaHoraInicio:  "2026-10-17T08:00:00",
			FechaHoraFin:     &fin,
			FirmaJefeArea:    domain.String("img"),
			FirmaRRHHDigital: domain.String("sig"),
		},
		{ID: "p2", EmpleadoID: "e2", TipoPermisoID: "t2", FechaHoraInicio: "2026-10-17T09:00:00"},
	})

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"p1", "e1", "Personal", "Aprobado", "2026-10-17T08:00:00", fin, "jefe_area, rrhh"}, table.Rows[0].Cells)
	assert.Equal(t, StyleSuccess, table.Rows[0].Style)
	assert.Equal(t, []string{"p2", "e2", "t2", "-", "2026-10-17T09:00:00", "-", "-"}, table.Rows[1].Cells)
}

func TestMetricsDetails(t *testing.T) {
	m := &domain.AttendanceMetrics{
		Totales:        domain.MetricsTotals{Puntual: 40, Tardanzas: 3, Faltas: 1, HorasExtras: 2.5},
		TotalEmpleados: 12,
		Data:           []map[string]any{{"dni": "1"}},
	}
	m.Rango.Inicio = "2026-10-01"
	m.Rango.Fin = "2026-10-15"

	rendered := MetricsDetails(m).Table().String()
	assert.Contains(t, rendered, "2026-10-01 - 2026-10-15")
	assert.Contains(t, rendered, "Horas extras  2.5")
	assert.Contains(t, rendered, "Registros     1")
}

func fixedPrinter(format FormatType) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, format, false)
	p.now = func() time.Time { return time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC) }
	return p, &out, &errOut
}

func TestPrinter_JSON(t *testing.T) {
	p, out, _ := fixedPrinter(FormatJSON)
	users := []domain.BiometricUser{{ID: 1, UserID: "70123456", Nombre: "Ana"}}

	require.NoError(t, p.PrintPage("usuarios listar", users, UsersTable(users), NewPagination(1, 10, 25)))

	var result struct {
		Success  bool                   `json:"success"`
		Data     []domain.BiometricUser `json:"data"`
		Metadata struct {
			Command    string     `json:"command"`
			Pagination Pagination `json:"pagination"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, users, result.Data)
	assert.Equal(t, "usuarios listar", result.Metadata.Command)
	assert.Equal(t, 3, result.Metadata.Pagination.TotalPages)
	assert.True(t, result.Metadata.Pagination.HasNext)
	assert.False(t, result.Metadata.Pagination.HasPrev)
}

func TestPrinter_YAMLUsesJSONNames(t *testing.T) {
	p, out, _ := fixedPrinter(FormatYAML)
	users := []domain.BiometricUser{{ID: 1, UserID: "70123456", Nombre: "Ana"}}

	require.NoError(t, p.Print("usuarios listar", users, UsersTable(users)))

	var result map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, true, result["success"])
	assert.Contains(t, out.String(), "user_id: \"70123456\"")
}

func TestPrinter_Table(t *testing.T) {
	p, out, _ := fixedPrinter(FormatTable)
	users := []domain.BiometricUser{{ID: 1, UserID: "70123456", Nombre: "Ana"}}

	require.NoError(t, p.PrintPage("usuarios listar", users, UsersTable(users), NewPagination(2, 10, 25)))

	assert.True(t, strings.HasPrefix(out.String(), "ID  DNI"))
	assert.Contains(t, out.String(), "Página 2 de 3 (25 registros)")
}

func TestPrinter_SuccessAndWarning(t *testing.T) {
	p, out, errOut := fixedPrinter(FormatTable)

	require.NoError(t, p.Success("papeletas firmar", "Papeleta firmada"))
	p.Warning("El tiempo excede el máximo permitido (2h).")

	assert.Equal(t, "✓ Papeleta firmada\n", out.String())
	assert.Equal(t, "⚠ El tiempo excede el máximo permitido (2h).\n", errOut.String())
}

func TestPrinter_Error(t *testing.T) {
	err := pkgerrors.New(pkgerrors.ErrNotFound, "papeleta no encontrada")

	t.Run("table", func(t *testing.T) {
		p, out, errOut := fixedPrinter(FormatTable)
		p.Error("papeletas ver", err)
		assert.Empty(t, out.String())
		assert.Equal(t, "✗ papeleta no encontrada\n", errOut.String())
	})

	t.Run("json", func(t *testing.T) {
		p, out, errOut := fixedPrinter(FormatJSON)
		p.Error("papeletas ver", err)
		assert.Empty(t, errOut.String())

		var result Result
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.False(t, result.Success)
		assert.Equal(t, "papeleta no encontrada", result.Error)
		assert.Equal(t, string(pkgerrors.ErrNotFound), result.Code)
	})
}

func TestUserMessage(t *testing.T) {
	backend := func(status int, body string) error {
		httpErr := &client.HTTPError{Service: "papeletas", Method: "POST", Path: "/permisos", StatusCode: status, Body: []byte(body)}
		return pkgerrors.Wrap(httpErr, pkgerrors.FromHTTPStatus(status), "backend")
	}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), "boom"},
		{"coded", pkgerrors.New(pkgerrors.ErrValidation, "fecha inválida"), "fecha inválida"},
		{"transport", pkgerrors.Wrap(errors.New("dial tcp"), pkgerrors.ErrUnavailable, "auth GET /perfil"),
			"Servicio no disponible (auth GET /perfil)"},
		{"internal", pkgerrors.Wrap(errors.New("eof"), pkgerrors.ErrInternal, "decode"), "Error interno del servidor"},
		{"backend message with fields", backend(422, `{"message":"Error de validación","errors":[{"field":"dni","message":"requerido"},{"param":"motivo","msg":"vacío"}]}`),
			"Datos inválidos: Error de validación\n  - dni: requerido\n  - motivo: vacío"},
		{"backend single field", backend(400, `{"details":[{"field":"correo","message":"inválido"}]}`),
			"Datos inválidos: inválido"},
		{"backend conflict", backend(409, `{"error":"DNI duplicado"}`), "Conflicto de datos (por ejemplo, duplicado): DNI duplicado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
