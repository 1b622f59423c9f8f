package domain

// SignerRole роль подписанта папелеты (tipo_firma)
type SignerRole string

const (
	SignerSolicitante SignerRole = "solicitante"
	SignerJefeArea    SignerRole = "jefe_area"
	SignerRRHH        SignerRole = "rrhh"
	SignerInstitucion SignerRole = "institucion"
)

// SignerRoles все роли подписантов в порядке полей папелеты
var SignerRoles = []SignerRole{SignerSolicitante, SignerJefeArea, SignerRRHH, SignerInstitucion}

// Valid проверяет, что роль известна бэкенду
func (r SignerRole) Valid() bool {
	for _, known := range SignerRoles {
		if r == known {
			return true
		}
	}
	return false
}

// SignatureField имя поля подписи папелеты, например firma_rrhh
func (r SignerRole) SignatureField() string {
	return "firma_" + string(r)
}

// Методы подписи
const (
	SignMethodBase64 = "base64"
	SignMethodONPE   = "onpe"
)

// PermitType тип папелеты
type PermitType struct {
	ID                       string   `json:"id"`
	Nombre                   string   `json:"nombre"`
	Codigo                   string   `json:"codigo"`
	Descripcion              string   `json:"descripcion,omitempty"`
	RequiereFirmaInstitucion bool     `json:"requiere_firma_institucion"`
	TiempoMaximoHoras        *float64 `json:"tiempo_maximo_horas"`
	Activo                   bool     `json:"esta_activo"`
	CreadoEn                 string   `json:"creado_en,omitempty"`
	ActualizadoEn            string   `json:"actualizado_en,omitempty"`
	Count                    *struct {
		Permisos int `json:"permisos"`
	} `json:"_count,omitempty"`
}

// PermitTypeRequest создание и обновление типа папелеты
type PermitTypeRequest struct {
	Nombre                   *string  `json:"nombre,omitempty"`
	Codigo                   *string  `json:"codigo,omitempty"`
	Descripcion              *string  `json:"descripcion,omitempty"`
	RequiereFirmaInstitucion *bool    `json:"requiere_firma_institucion,omitempty"`
	TiempoMaximoHoras        *float64 `json:"tiempo_maximo_horas,omitempty"`
	Activo                   *bool    `json:"esta_activo,omitempty"`
}

// Status статус (estado) папелеты или инцидента
type Status struct {
	ID            string `json:"id"`
	Nombre        string `json:"nombre"`
	Codigo        string `json:"codigo,omitempty"`
	Descripcion   string `json:"descripcion,omitempty"`
	CreadoEn      string `json:"creado_en,omitempty"`
	ActualizadoEn string `json:"actualizado_en,omitempty"`
}

// StatusRequest создание и обновление статуса
type StatusRequest struct {
	Nombre      *string `json:"nombre,omitempty"`
	Codigo      *string `json:"codigo,omitempty"`
	Descripcion *string `json:"descripcion,omitempty"`
}

// Certificate сертификат цифровой подписи
type Certificate struct {
	DNI             string `json:"dni"`
	Nombre          string `json:"nombre"`
	EntidadEmisora  string `json:"entidad_emisora,omitempty"`
	FechaEmision    string `json:"fecha_emision,omitempty"`
	FechaExpiracion string `json:"fecha_expiracion,omitempty"`
	NumeroSerie     string `json:"numero_serie,omitempty"`
}

// Requester данные заявителя, по которым определяется цепочка подписей
type Requester struct {
	Nombre string `json:"nombre,omitempty"`
	Cargo  string `json:"cargo,omitempty"`
	EsJefe bool   `json:"es_jefe,omitempty"`
}

// Permit папелета (разрешение на выход)
type Permit struct {
	ID                  string  `json:"id"`
	EmpleadoID          string  `json:"empleado_id"`
	TipoPermisoID       string  `json:"tipo_permiso_id"`
	EstadoID            string  `json:"estado_id"`
	FechaHoraInicio     string  `json:"fecha_hora_inicio"`
	FechaHoraFin        *string `json:"fecha_hora_fin,omitempty"`
	HoraSalidaCalculada *string `json:"hora_salida_calculada,omitempty"`
	Motivo              string  `json:"motivo"`
	Justificacion       *string `json:"justificacion,omitempty"`
	InstitucionVisitada *string `json:"institucion_visitada,omitempty"`

	FirmaSolicitante *string `json:"firma_solicitante,omitempty"`
	FirmaJefeArea    *string `json:"firma_jefe_area,omitempty"`
	FirmaRRHH        *string `json:"firma_rrhh,omitempty"`
	FirmaInstitucion *string `json:"firma_institucion,omitempty"`

	FirmaSolicitanteEn *string `json:"firma_solicitante_en,omitempty"`
	FirmaJefeAreaEn    *string `json:"firma_jefe_area_en,omitempty"`
	FirmaRRHHEn        *string `json:"firma_rrhh_en,omitempty"`
	FirmaInstitucionEn *string `json:"firma_institucion_en,omitempty"`

	MetodoFirmaSolicitante *string `json:"metodo_firma_solicitante,omitempty"`
	MetodoFirmaJefeArea    *string `json:"metodo_firma_jefe_area,omitempty"`
	MetodoFirmaRRHH        *string `json:"metodo_firma_rrhh,omitempty"`
	MetodoFirmaInstitucion *string `json:"metodo_firma_institucion,omitempty"`

	FirmaSolicitanteDigital *string `json:"firma_solicitante_digital,omitempty"`
	FirmaJefeAreaDigital    *string `json:"firma_jefe_area_digital,omitempty"`
	FirmaRRHHDigital        *string `json:"firma_rrhh_digital,omitempty"`
	FirmaInstitucionDigital *string `json:"firma_institucion_digital,omitempty"`

	CertificadoSolicitante *Certificate `json:"certificado_solicitante,omitempty"`
	CertificadoJefeArea    *Certificate `json:"certificado_jefe_area,omitempty"`
	CertificadoRRHH        *Certificate `json:"certificado_rrhh,omitempty"`
	CertificadoInstitucion *Certificate `json:"certificado_institucion,omitempty"`

	FirmaSolicitanteValidada *bool `json:"firma_solicitante_validada,omitempty"`
	FirmaJefeAreaValidada    *bool `json:"firma_jefe_area_validada,omitempty"`
	FirmaRRHHValidada        *bool `json:"firma_rrhh_validada,omitempty"`
	FirmaInstitucionValidada *bool `json:"firma_institucion_validada,omitempty"`

	DocumentoHash  *string `json:"documento_hash,omitempty"`
	PDFFirmadoPath *string `json:"pdf_firmado_path,omitempty"`
	CreadoEn       string  `json:"creado_en,omitempty"`
	ActualizadoEn  string  `json:"actualizado_en,omitempty"`

	TipoPermiso *PermitType `json:"tipo_permiso,omitempty"`
	Estado      *Status     `json:"estado,omitempty"`
	Solicitante *Requester  `json:"solicitante,omitempty"`
}

// Signature возвращает подпись (base64 или цифровую) в слоте роли
func (p *Permit) Signature(role SignerRole) string {
	var base, digital *string
	switch role {
	case SignerSolicitante:
		base, digital = p.FirmaSolicitante, p.FirmaSolicitanteDigital
	case SignerJefeArea:
		base, digital = p.FirmaJefeArea, p.FirmaJefeAreaDigital
	case SignerRRHH:
		base, digital = p.FirmaRRHH, p.FirmaRRHHDigital
	case SignerInstitucion:
		base, digital = p.FirmaInstitucion, p.FirmaInstitucionDigital
	}
	if base != nil && *base != "" {
		return *base
	}
	if digital != nil {
		return *digital
	}
	return ""
}

// IsSigned проверяет, заполнен ли слот подписи роли
func (p *Permit) IsSigned(role SignerRole) bool {
	return p.Signature(role) != ""
}

// StatusName имя статуса или пустая строка
func (p *Permit) StatusName() string {
	if p.Estado == nil {
		return ""
	}
	return p.Estado.Nombre
}

// CreatePermitRequest создание папелеты: личной или служебной командировки
type CreatePermitRequest struct {
	EmpleadoID          string `json:"empleado_id" validate:"required"`
	TipoPermisoID       string `json:"tipo_permiso_id" validate:"required"`
	FechaHoraInicio     string `json:"fecha_hora_inicio" validate:"required"`
	FechaHoraFin        string `json:"fecha_hora_fin,omitempty"`
	Motivo              string `json:"motivo" validate:"required"`
	Justificacion       string `json:"justificacion,omitempty"`
	InstitucionVisitada string `json:"institucion_visitada,omitempty"`
}

// UpdatePermitRequest частичное обновление папелеты
type UpdatePermitRequest struct {
	TipoPermisoID       *string `json:"tipo_permiso_id,omitempty"`
	FechaHoraInicio     *string `json:"fecha_hora_inicio,omitempty"`
	FechaHoraFin        *string `json:"fecha_hora_fin,omitempty"`
	Motivo              *string `json:"motivo,omitempty"`
	Justificacion       *string `json:"justificacion,omitempty"`
	InstitucionVisitada *string `json:"institucion_visitada,omitempty"`
}

// PermitQuery фильтры списка папелет
type PermitQuery struct {
	EmpleadoID    string
	TipoPermisoID string
	EstadoID      string
	FechaDesde    string
	FechaHasta    string
	Page          int
	Limit         int
}

// PermitResponse ответ операций над папелетой
type PermitResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	Data            Permit `json:"data"`
	FirmasCompletas *bool  `json:"firmas_completas,omitempty"`
	Certificado     any    `json:"certificado,omitempty"`
	QRVerificacion  string `json:"qr_verificacion,omitempty"`
	URLVerificacion string `json:"url_verificacion,omitempty"`
}

// SignRequest подпись изображением base64
type SignRequest struct {
	TipoFirma SignerRole `json:"tipo_firma"`
	Firma     string     `json:"firma"`
}

// DigitalSignRequest цифровая подпись с сертификатом
type DigitalSignRequest struct {
	TipoFirma    SignerRole  `json:"tipo_firma"`
	FirmaDigital string      `json:"firma_digital"`
	Certificado  Certificate `json:"certificado"`
}

// SignatureVerification результат проверки подписи
type SignatureVerification struct {
	PermisoID   string     `json:"permiso_id"`
	TipoFirma   SignerRole `json:"tipo_firma"`
	MetodoFirma string     `json:"metodo_firma"`
	Validada    bool       `json:"validada"`
	Firmante    struct {
		Nombre string `json:"nombre"`
		DNI    string `json:"dni"`
		Cargo  string `json:"cargo"`
	} `json:"firmante"`
	Certificado *struct {
		EntidadEmisora string `json:"entidad_emisora"`
		NumeroSerie    string `json:"numero_serie"`
		VigenteDesde   string `json:"vigente_desde"`
		VigenteHasta   string `json:"vigente_hasta"`
	} `json:"certificado,omitempty"`
	FechaFirma    string `json:"fecha_firma"`
	DocumentoHash string `json:"documento_hash"`
	Permiso       struct {
		EmpleadoID  string `json:"empleado_id"`
		TipoPermiso string `json:"tipo_permiso"`
		Estado      string `json:"estado"`
		FechaInicio string `json:"fecha_inicio"`
	} `json:"permiso"`
}

// UploadPDFResponse ответ на загрузку подписанного PDF
type UploadPDFResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ID             string `json:"id"`
		PDFFirmadoPath string `json:"pdf_firmado_path"`
	} `json:"data"`
	Archivo *struct {
		Nombre string `json:"nombre"`
		Ruta   string `json:"ruta"`
		Tamano int64  `json:"tamano"`
	} `json:"archivo,omitempty"`
}
