package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRoleRef_Unmarshal проверяет разбор роли из объекта, строки и null
func TestRoleRef_Unmarshal(t *testing.T) {
	var u AuthUser
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","rol":{"id":"r1","nombre":"RRHH"}}`), &u))
	assert.Equal(t, "RRHH", u.Rol.String())
	assert.Equal(t, "r1", u.Rol.ID)

	u = AuthUser{}
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","rol":"ADMIN"}`), &u))
	assert.Equal(t, "ADMIN", u.Rol.String())

	u = AuthUser{}
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","rol":null}`), &u))
	assert.Equal(t, "", u.Rol.String())

	var nilRole *RoleRef
	assert.Equal(t, "", nilRole.String())
}

// TestErrorBody_Summary проверяет выбор сообщения из разных форматов ошибок
func TestErrorBody_Summary(t *testing.T) {
	cases := map[string]string{
		`{"success":false,"message":"Credenciales inválidas"}`:               "Credenciales inválidas",
		`{"error":"Validation failed","details":[{"msg":"x","param":"y"}]}`: "Validation failed",
		`{"detail":"Not found"}`:                                             "Not found",
		`{"errors":[{"field":"dni","message":"DNI inválido"}]}`:              "DNI inválido",
		`{"details":[{"msg":"fecha_fin requerida"}]}`:                        "fecha_fin requerida",
		`{}`: "",
	}

	for raw, want := range cases {
		var body ErrorBody
		require.NoError(t, json.Unmarshal([]byte(raw), &body))
		assert.Equal(t, want, body.Summary(), raw)
	}
}

// TestPermit_Signature проверяет чтение слотов подписей
func TestPermit_Signature(t *testing.T) {
	raw := `{
		"id": "p1",
		"empleado_id": "12345678",
		"firma_jefe_area": "data:image/png;base64,AAA",
		"firma_rrhh": null,
		"firma_institucion_digital": "SIGNED",
		"estado": {"id": "e1", "nombre": "Pendiente", "codigo": "PEN"}
	}`

	var p Permit
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.True(t, p.IsSigned(SignerJefeArea))
	assert.False(t, p.IsSigned(SignerRRHH))
	assert.False(t, p.IsSigned(SignerSolicitante))
	assert.True(t, p.IsSigned(SignerInstitucion))
	assert.Equal(t, "Pendiente", p.StatusName())
	assert.Nil(t, p.FechaHoraFin)
}

// TestSignerRole проверяет известные роли и имена полей
func TestSignerRole(t *testing.T) {
	assert.True(t, SignerRRHH.Valid())
	assert.False(t, SignerRole("director").Valid())
	assert.Equal(t, "firma_jefe_area", SignerJefeArea.SignatureField())
}

// TestLabels проверяет справочники названий
func TestLabels(t *testing.T) {
	assert.Equal(t, "Llegada Tarde", PunchLabels[PunchLateArrival])
	assert.Equal(t, "Administrador", PrivilegeLabel(PrivilegeAdmin))
	assert.Equal(t, "Desconocido", PrivilegeLabel(3))
	assert.Len(t, DiasSemana, 7)
	assert.Len(t, DiasLaborales, 5)
}
