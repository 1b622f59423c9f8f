package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RRHHPlatform/internal/domain"
)

func TestClassifyRequester(t *testing.T) {
	tests := []struct {
		name      string
		requester *domain.Requester
		want      RequesterKind
	}{
		{"nil", nil, RequesterEmployee},
		{"hr chief by title", &domain.Requester{Cargo: "Jefe de Recursos Humanos"}, RequesterHRChief},
		{"hr chief by flag", &domain.Requester{Cargo: "Analista RRHH", EsJefe: true}, RequesterHRChief},
		{"hr manager", &domain.Requester{Cargo: "Gerente de RRHH"}, RequesterHRChief},
		{"hr analyst", &domain.Requester{Cargo: "Analista de Recursos Humanos"}, RequesterEmployee},
		{"supervisor", &domain.Requester{Cargo: "Supervisor de Operaciones"}, RequesterSupervisor},
		{"coordinator", &domain.Requester{Cargo: "COORDINADOR DE LOGÍSTICA"}, RequesterSupervisor},
		{"director", &domain.Requester{Cargo: "Director Académico"}, RequesterSupervisor},
		{"boss flag", &domain.Requester{Cargo: "Contador", EsJefe: true}, RequesterSupervisor},
		{"employee", &domain.Requester{Cargo: "Asistente Administrativo"}, RequesterEmployee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRequester(tt.requester))
		})
	}
}

func TestResolveSignatureConfig(t *testing.T) {
	t.Run("hr chief", func(t *testing.T) {
		cfg := ResolveSignatureConfig(&domain.Requester{Cargo: "Jefe de Recursos Humanos", EsJefe: true})

		require.NotNil(t, cfg.Firma1)
		require.NotNil(t, cfg.Firma2)
		assert.Nil(t, cfg.Firma3)
		assert.Equal(t, SignatureSlot{Label: "SOLICITANTE", Field: "firma_solicitante", RoleKey: domain.SignerSolicitante}, *cfg.Firma1)
		assert.Equal(t, SignatureSlot{Label: "JEFE DE ADMINISTRACIÓN", Field: "firma_institucion", RoleKey: domain.SignerInstitucion}, *cfg.Firma2)
		assert.Equal(t, []domain.SignerRole{domain.SignerInstitucion}, cfg.Required())
	})

	t.Run("supervisor", func(t *testing.T) {
		cfg := ResolveSignatureConfig(&domain.Requester{Cargo: "Supervisor de Operaciones"})

		assert.Equal(t, "JEFE DE RRHH", cfg.Firma1.Label)
		assert.Equal(t, "firma_rrhh", cfg.Firma1.Field)
		assert.Equal(t, "DIRECTOR / ADMINISTRACIÓN", cfg.Firma2.Label)
		assert.Nil(t, cfg.Firma3)
		assert.Equal(t, []domain.SignerRole{domain.SignerRRHH, domain.SignerInstitucion}, cfg.Required())
	})

	t.Run("employee", func(t *testing.T) {
		cfg := ResolveSignatureConfig(&domain.Requester{Cargo: "Asistente"})

		assert.Equal(t, "JEFE DE ÁREA", cfg.Firma1.Label)
		assert.Equal(t, "firma_jefe_area", cfg.Firma1.Field)
		assert.Equal(t, "JEFE DE RRHH", cfg.Firma2.Label)
		assert.Nil(t, cfg.Firma3)
		assert.Equal(t, []domain.SignerRole{domain.SignerJefeArea, domain.SignerRRHH}, cfg.Required())
	})
}

func TestPending(t *testing.T) {
	cfg := ResolveSignatureConfig(&domain.Requester{Cargo: "Asistente"})
	permit := &domain.Permit{FirmaJefeAreaDigital: domain.String("sig")}

	assert.Equal(t, []domain.SignerRole{domain.SignerRRHH}, cfg.Pending(permit))

	permit.FirmaRRHH = domain.String("img")
	assert.Empty(t, cfg.Pending(permit))
}

func TestAvailableSignatureRole(t *testing.T) {
	employee := ResolveSignatureConfig(&domain.Requester{Cargo: "Asistente"})
	supervisor := ResolveSignatureConfig(&domain.Requester{Cargo: "Supervisor de Ventas"})
	hrChief := ResolveSignatureConfig(&domain.Requester{Cargo: "Jefe de RRHH"})

	tests := []struct {
		name   string
		permit *domain.Permit
		user   *SignerIdentity
		cfg    SignatureConfig
		want   domain.SignerRole
		ok     bool
	}{
		{"nil user", &domain.Permit{}, nil, employee, "", false},
		{"hr signs employee permit", &domain.Permit{}, &SignerIdentity{Rol: "rrhh"}, employee, domain.SignerRRHH, true},
		{"hr by title signs supervisor permit", &domain.Permit{}, &SignerIdentity{Rol: "USER", Cargo: "Analista de Recursos Humanos"}, supervisor, domain.SignerRRHH, true},
		{"hr slot already signed", &domain.Permit{FirmaRRHH: domain.String("x")}, &SignerIdentity{Rol: "RRHH"}, employee, "", false},
		{"hr slot signed digitally", &domain.Permit{FirmaRRHHDigital: domain.String("x")}, &SignerIdentity{Rol: "RRHH"}, employee, "", false},
		{"admin signs institution", &domain.Permit{}, &SignerIdentity{Rol: "ADMIN"}, supervisor, domain.SignerInstitucion, true},
		{"director title signs institution", &domain.Permit{}, &SignerIdentity{Cargo: "Director General"}, hrChief, domain.SignerInstitucion, true},
		{"admin cannot sign employee permit", &domain.Permit{}, &SignerIdentity{Rol: "ADMIN"}, employee, "", false},
		{"supervisor signs area slot", &domain.Permit{}, &SignerIdentity{Rol: "Supervisor"}, employee, domain.SignerJefeArea, true},
		{"boss slot signed", &domain.Permit{FirmaJefeArea: domain.String("x")}, &SignerIdentity{Rol: "JEFE"}, employee, "", false},
		{"plain user", &domain.Permit{}, &SignerIdentity{Rol: "USER", Cargo: "Asistente"}, employee, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, ok := AvailableSignatureRole(tt.permit, tt.user, tt.cfg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestSignableRoles(t *testing.T) {
	supervisor := ResolveSignatureConfig(&domain.Requester{Cargo: "Supervisor de Operaciones"})

	// RRHH с должностью директора занимает оба слота бланка супервайзера
	both := &SignerIdentity{Rol: "RRHH", Cargo: "Director de Administracion"}
	assert.Equal(t, []domain.SignerRole{domain.SignerRRHH, domain.SignerInstitucion},
		SignableRoles(&domain.Permit{}, both, supervisor))
	assert.Equal(t, []domain.SignerRole{domain.SignerInstitucion},
		SignableRoles(&domain.Permit{FirmaRRHH: domain.String("x")}, both, supervisor))

	assert.Empty(t, SignableRoles(&domain.Permit{}, &SignerIdentity{Rol: "SUPERVISOR"}, supervisor))
	assert.Empty(t, SignableRoles(&domain.Permit{}, nil, supervisor))
	assert.Empty(t, SignableRoles(nil, both, supervisor))
}

func TestSignatureConfig_HasSlot(t *testing.T) {
	supervisor := ResolveSignatureConfig(&domain.Requester{Cargo: "Supervisor de Operaciones"})
	assert.True(t, supervisor.HasSlot(domain.SignerRRHH))
	assert.True(t, supervisor.HasSlot(domain.SignerInstitucion))
	assert.False(t, supervisor.HasSlot(domain.SignerJefeArea))
	assert.False(t, supervisor.HasSlot(domain.SignerSolicitante))

	hrChief := ResolveSignatureConfig(&domain.Requester{Cargo: "Jefe de Recursos Humanos"})
	assert.True(t, hrChief.HasSlot(domain.SignerSolicitante))
}

func TestIdentityFromProfile(t *testing.T) {
	assert.Nil(t, IdentityFromProfile(nil))
	assert.Equal(t, &SignerIdentity{Rol: "RRHH", Cargo: "Jefe"}, IdentityFromProfile(&domain.Profile{Rol: "RRHH", Cargo: "Jefe"}))
}

func TestHasPendingOrOpenPermit(t *testing.T) {
	closed := "2026-10-17T12:00:00"
	status := func(name string) *domain.Status { return &domain.Status{Nombre: name} }

	tests := []struct {
		name    string
		permits []domain.Permit
		want    bool
	}{
		{"empty", nil, false},
		{"other employee", []domain.Permit{{EmpleadoID: "e2", Estado: status("Pendiente")}}, false},
		{"pending", []domain.Permit{{EmpleadoID: "e1", Estado: status("Pendiente de firma"), FechaHoraFin: &closed}}, true},
		{"approved without return", []domain.Permit{{EmpleadoID: "e1", Estado: status("Aprobado")}}, true},
		{"approved with empty return", []domain.Permit{{EmpleadoID: "e1", Estado: status("Aprobado"), FechaHoraFin: domain.String("")}}, true},
		{"approved and closed", []domain.Permit{{EmpleadoID: "e1", Estado: status("Aprobado"), FechaHoraFin: &closed}}, false},
		{"rejected without return", []domain.Permit{{EmpleadoID: "e1", Estado: status("Rechazado")}}, false},
		{"cancelled", []domain.Permit{{EmpleadoID: "e1", Estado: status("CANCELADO")}}, false},
		{"no status and open", []domain.Permit{{EmpleadoID: "e1"}}, true},
		{"mixed", []domain.Permit{
			{EmpleadoID: "e1", Estado: status("Aprobado"), FechaHoraFin: &closed},
			{EmpleadoID: "e1", Estado: status("Rechazado")},
			{EmpleadoID: "e1", Estado: status("Pendiente")},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPendingOrOpenPermit("e1", tt.permits))
		})
	}
}

func TestValidateManualReturnTime(t *testing.T) {
	start := "2026-10-17T08:00:00"

	assert.Empty(t, ValidateManualReturnTime("", "2026-10-17T12:00:00", 2, false))
	assert.Empty(t, ValidateManualReturnTime(start, "", 2, false))
	assert.Empty(t, ValidateManualReturnTime(start, "2026-10-17T12:00:00", 0, true))
	assert.Empty(t, ValidateManualReturnTime(start, "not a date", 2, true))

	// В пределах лимита
	assert.Empty(t, ValidateManualReturnTime(start, "2026-10-17T10:00:00", 2, true))

	assert.Equal(t,
		"ADVERTENCIA: El tiempo excede el máximo permitido (2h).",
		ValidateManualReturnTime(start, "2026-10-17T10:01", 2, false))
	assert.Equal(t,
		"El tiempo excede el máximo permitido (1.5h). Se enviará una notificación.",
		ValidateManualReturnTime(start, "2026-10-17T12:00:00", 1.5, true))
}
