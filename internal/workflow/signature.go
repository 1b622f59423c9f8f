// Package workflow содержит правила согласования папелет: кто подписывает,
// кто может подписать сейчас, открытые папелеты сотрудника и контроль времени возврата.
package workflow

import (
	"strings"

	"RRHHPlatform/internal/domain"
)

// RequesterKind категория заявителя
type RequesterKind int

const (
	RequesterEmployee RequesterKind = iota
	RequesterSupervisor
	RequesterHRChief
)

func (k RequesterKind) String() string {
	switch k {
	case RequesterHRChief:
		return "jefe_rrhh"
	case RequesterSupervisor:
		return "supervisor"
	default:
		return "empleado"
	}
}

var (
	hrMarkers         = []string{"recursos humanos", "rrhh"}
	hrChiefMarkers    = []string{"jefe", "gerente"}
	supervisorMarkers = []string{"supervisor", "coordinador", "director"}
)

// ClassifyRequester определяет категорию заявителя по должности и признаку руководителя.
// Первое совпадение побеждает: руководитель RRHH, затем руководитель, затем сотрудник.
func ClassifyRequester(r *domain.Requester) RequesterKind {
	if r == nil {
		return RequesterEmployee
	}

	cargo := strings.ToLower(r.Cargo)
	isHR := containsAny(cargo, hrMarkers)

	switch {
	case isHR && (r.EsJefe || containsAny(cargo, hrChiefMarkers)):
		return RequesterHRChief
	case r.EsJefe || containsAny(cargo, supervisorMarkers):
		return RequesterSupervisor
	default:
		return RequesterEmployee
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// SignatureSlot слот подписи на бланке папелеты
type SignatureSlot struct {
	Label   string
	Field   string
	RoleKey domain.SignerRole
}

func slot(label string, role domain.SignerRole) *SignatureSlot {
	return &SignatureSlot{Label: label, Field: role.SignatureField(), RoleKey: role}
}

// SignatureConfig слоты подписей папелеты. Firma3 всегда nil.
type SignatureConfig struct {
	Kind   RequesterKind
	Firma1 *SignatureSlot
	Firma2 *SignatureSlot
	Firma3 *SignatureSlot
}

// Slots возвращает заполненные слоты по порядку
func (c SignatureConfig) Slots() []*SignatureSlot {
	slots := make([]*SignatureSlot, 0, 3)
	for _, s := range []*SignatureSlot{c.Firma1, c.Firma2, c.Firma3} {
		if s != nil {
			slots = append(slots, s)
		}
	}
	return slots
}

// Required роли, чьи подписи нужны для согласования. Подпись самого
// руководителя RRHH в слоте заявителя не требуется.
func (c SignatureConfig) Required() []domain.SignerRole {
	roles := make([]domain.SignerRole, 0, 2)
	for _, s := range c.Slots() {
		if c.Kind == RequesterHRChief && s.RoleKey == domain.SignerSolicitante {
			continue
		}
		roles = append(roles, s.RoleKey)
	}
	return roles
}

// Pending роли из Required, которые еще не подписали папелету
func (c SignatureConfig) Pending(p *domain.Permit) []domain.SignerRole {
	pending := make([]domain.SignerRole, 0, 2)
	for _, role := range c.Required() {
		if p == nil || !p.IsSigned(role) {
			pending = append(pending, role)
		}
	}
	return pending
}

// ResolveSignatureConfig возвращает слоты подписей для заявителя
func ResolveSignatureConfig(r *domain.Requester) SignatureConfig {
	kind := ClassifyRequester(r)

	switch kind {
	case RequesterHRChief:
		return SignatureConfig{
			Kind:   kind,
			Firma1: slot("SOLICITANTE", domain.SignerSolicitante),
			Firma2: slot("JEFE DE ADMINISTRACIÓN", domain.SignerInstitucion),
		}
	case RequesterSupervisor:
		return SignatureConfig{
			Kind:   kind,
			Firma1: slot("JEFE DE RRHH", domain.SignerRRHH),
			Firma2: slot("DIRECTOR / ADMINISTRACIÓN", domain.SignerInstitucion),
		}
	default:
		return SignatureConfig{
			Kind:   kind,
			Firma1: slot("JEFE DE ÁREA", domain.SignerJefeArea),
			Firma2: slot("JEFE DE RRHH", domain.SignerRRHH),
		}
	}
}

// SignerIdentity текущий пользователь, который хочет подписать
type SignerIdentity struct {
	Rol   string
	Cargo string
}

// IdentityFromProfile строит SignerIdentity из профиля сессии; nil для nil
func IdentityFromProfile(p *domain.Profile) *SignerIdentity {
	if p == nil {
		return nil
	}
	return &SignerIdentity{Rol: p.Rol, Cargo: p.Cargo}
}

// AvailableSignatureRole возвращает роль, в которой пользователь может подписать
// папелету сейчас. Слот считается подписанным при наличии обычной или цифровой подписи.
func AvailableSignatureRole(p *domain.Permit, user *SignerIdentity, cfg SignatureConfig) (domain.SignerRole, bool) {
	roles := SignableRoles(p, user, cfg)
	if len(roles) == 0 {
		return "", false
	}
	return roles[0], true
}

// SignableRoles все неподписанные слоты, доступные пользователю, в порядке
// приоритета: rrhh, institucion, jefe_area.
func SignableRoles(p *domain.Permit, user *SignerIdentity, cfg SignatureConfig) []domain.SignerRole {
	if user == nil || p == nil {
		return nil
	}

	rol := strings.ToUpper(strings.TrimSpace(user.Rol))
	cargo := strings.ToUpper(user.Cargo)

	var roles []domain.SignerRole
	if rol == "RRHH" || strings.Contains(cargo, "RECURSOS HUMANOS") {
		if (slotIs(cfg.Firma1, domain.SignerRRHH) || slotIs(cfg.Firma2, domain.SignerRRHH)) && !p.IsSigned(domain.SignerRRHH) {
			roles = append(roles, domain.SignerRRHH)
		}
	}

	if rol == "ADMIN" || strings.Contains(cargo, "DIRECTOR") || strings.Contains(cargo, "ADMINISTRACION") {
		if slotIs(cfg.Firma2, domain.SignerInstitucion) && !p.IsSigned(domain.SignerInstitucion) {
			roles = append(roles, domain.SignerInstitucion)
		}
	}

	if rol == "SUPERVISOR" || rol == "JEFE" {
		if slotIs(cfg.Firma1, domain.SignerJefeArea) && !p.IsSigned(domain.SignerJefeArea) {
			roles = append(roles, domain.SignerJefeArea)
		}
	}

	return roles
}

// HasSlot проверяет, есть ли на бланке слот для роли
func (c SignatureConfig) HasSlot(role domain.SignerRole) bool {
	for _, s := range c.Slots() {
		if s.RoleKey == role {
			return true
		}
	}
	return false
}

func slotIs(s *SignatureSlot, role domain.SignerRole) bool {
	return s != nil && s.RoleKey == role
}
