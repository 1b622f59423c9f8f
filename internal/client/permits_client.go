package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"RRHHPlatform/internal/domain"
)

// ReturnTimeLayout формат времени возврата: локальное время без зоны, секунды обнулены
const ReturnTimeLayout = "2006-01-02T15:04:00"

// PermitsClient папелеты: типы, статусы, подписи и PDF
type PermitsClient struct {
	api      *API
	statuses *StatusClient
	now      func() time.Time
}

// NewPermitsClient создает клиент папелет
func NewPermitsClient(api *API) *PermitsClient {
	return &PermitsClient{
		api:      api,
		statuses: NewStatusClient(api),
		now:      time.Now,
	}
}

// Statuses справочник статусов папелет
func (c *PermitsClient) Statuses() *StatusClient {
	return c.statuses
}

// ListTypes GET /permiso-tipos
func (c *PermitsClient) ListTypes(ctx context.Context, activo *bool) ([]domain.PermitType, error) {
	query := url.Values{}
	if activo != nil {
		query.Set("activo", strconv.FormatBool(*activo))
	}
	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/permiso-tipos", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.PermitType](raw, "data")
}

// GetType GET /permiso-tipos/:id
func (c *PermitsClient) GetType(ctx context.Context, id string) (*domain.PermitType, error) {
	return c.permitType(ctx, http.MethodGet, fmt.Sprintf("/permiso-tipos/%s", id), nil)
}

// CreateType POST /permiso-tipos
func (c *PermitsClient) CreateType(ctx context.Context, req domain.PermitTypeRequest) (*domain.PermitType, error) {
	return c.permitType(ctx, http.MethodPost, "/permiso-tipos", req)
}

// UpdateType PUT /permiso-tipos/:id
func (c *PermitsClient) UpdateType(ctx context.Context, id string, req domain.PermitTypeRequest) (*domain.PermitType, error) {
	return c.permitType(ctx, http.MethodPut, fmt.Sprintf("/permiso-tipos/%s", id), req)
}

// DeleteType DELETE /permiso-tipos/:id
func (c *PermitsClient) DeleteType(ctx context.Context, id string) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Delete(ctx, fmt.Sprintf("/permiso-tipos/%s", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *PermitsClient) permitType(ctx context.Context, method, path string, body any) (*domain.PermitType, error) {
	raw, err := c.api.SendRaw(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	var t domain.PermitType
	if err := decodeObject(raw, &t, "data"); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create POST /permisos
func (c *PermitsClient) Create(ctx context.Context, req domain.CreatePermitRequest) (*domain.PermitResponse, error) {
	var resp domain.PermitResponse
	if err := c.api.Post(ctx, "/permisos", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreatePersonal личная папелета; institucion_visitada не отправляется
func (c *PermitsClient) CreatePersonal(ctx context.Context, req domain.CreatePermitRequest) (*domain.PermitResponse, error) {
	req.InstitucionVisitada = ""
	return c.Create(ctx, req)
}

// CreateCommission служебная командировка с посещаемой организацией
func (c *PermitsClient) CreateCommission(ctx context.Context, req domain.CreatePermitRequest, institucion string) (*domain.PermitResponse, error) {
	req.InstitucionVisitada = institucion
	return c.Create(ctx, req)
}

// List GET /permisos
func (c *PermitsClient) List(ctx context.Context, q domain.PermitQuery) (*domain.PagedList[domain.Permit], error) {
	query := url.Values{}
	setIfNotEmpty(query, "empleado_id", q.EmpleadoID)
	setIfNotEmpty(query, "tipo_permiso_id", q.TipoPermisoID)
	setIfNotEmpty(query, "estado_id", q.EstadoID)
	setIfNotEmpty(query, "fecha_desde", q.FechaDesde)
	setIfNotEmpty(query, "fecha_hasta", q.FechaHasta)
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/permisos", query, nil)
	if err != nil {
		return nil, err
	}
	return decodePaged[domain.Permit](raw)
}

// Get GET /permisos/:id
func (c *PermitsClient) Get(ctx context.Context, id string) (*domain.Permit, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, fmt.Sprintf("/permisos/%s", id), nil, nil)
	if err != nil {
		return nil, err
	}
	var p domain.Permit
	if err := decodeObject(raw, &p, "data"); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update PUT /permisos/:id
func (c *PermitsClient) Update(ctx context.Context, id string, req domain.UpdatePermitRequest) (*domain.PermitResponse, error) {
	var resp domain.PermitResponse
	if err := c.api.Put(ctx, fmt.Sprintf("/permisos/%s", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete DELETE /permisos/:id
func (c *PermitsClient) Delete(ctx context.Context, id string) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Delete(ctx, fmt.Sprintf("/permisos/%s", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangeStatus меняет статус по коду, например APROBADO (PATCH /permisos/:id/estado)
func (c *PermitsClient) ChangeStatus(ctx context.Context, id, code string) (*domain.PermitResponse, error) {
	body := map[string]string{"codigo_estado": code}
	var resp domain.PermitResponse
	if err := c.api.Patch(ctx, fmt.Sprintf("/permisos/%s/estado", id), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Sign подпись изображением base64 (PATCH /permisos/:id/firmar)
func (c *PermitsClient) Sign(ctx context.Context, id string, req domain.SignRequest) (*domain.PermitResponse, error) {
	var resp domain.PermitResponse
	if err := c.api.Patch(ctx, fmt.Sprintf("/permisos/%s/firmar", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignAs подписывает в слоте роли
func (c *PermitsClient) SignAs(ctx context.Context, id string, role domain.SignerRole, firma string) (*domain.PermitResponse, error) {
	return c.Sign(ctx, id, domain.SignRequest{TipoFirma: role, Firma: firma})
}

// SignDigital цифровая подпись с сертификатом (PATCH /permisos/:id/firmar-digital)
func (c *PermitsClient) SignDigital(ctx context.Context, id string, req domain.DigitalSignRequest) (*domain.PermitResponse, error) {
	var resp domain.PermitResponse
	if err := c.api.Patch(ctx, fmt.Sprintf("/permisos/%s/firmar-digital", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignDigitalAs цифровая подпись в слоте роли
func (c *PermitsClient) SignDigitalAs(ctx context.Context, id string, role domain.SignerRole, firma string, cert domain.Certificate) (*domain.PermitResponse, error) {
	return c.SignDigital(ctx, id, domain.DigitalSignRequest{TipoFirma: role, FirmaDigital: firma, Certificado: cert})
}

// VerifySignature GET /permisos/:id/verificar-firma/:tipo
func (c *PermitsClient) VerifySignature(ctx context.Context, id string, role domain.SignerRole) (*domain.SignatureVerification, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, fmt.Sprintf("/permisos/%s/verificar-firma/%s", id, role), nil, nil)
	if err != nil {
		return nil, err
	}
	var v domain.SignatureVerification
	if err := decodeObject(raw, &v, "data"); err != nil {
		return nil, err
	}
	return &v, nil
}

// ViewPDF возвращает уже сгенерированный PDF (GET /permisos/:id/pdf/ver)
func (c *PermitsClient) ViewPDF(ctx context.Context, id string) (*Blob, error) {
	return c.api.SendBlob(ctx, http.MethodGet, fmt.Sprintf("/permisos/%s/pdf/ver", id), nil, nil)
}

// GeneratePDF генерирует и возвращает PDF (GET /permisos/:id/pdf)
func (c *PermitsClient) GeneratePDF(ctx context.Context, id string) (*Blob, error) {
	return c.api.SendBlob(ctx, http.MethodGet, fmt.Sprintf("/permisos/%s/pdf", id), nil, nil)
}

// UploadPDF загружает PDF, подписанный вручную (POST /permisos/:id/upload-pdf, поле pdf)
func (c *PermitsClient) UploadPDF(ctx context.Context, id, filename string, content []byte) (*domain.UploadPDFResponse, error) {
	form := NewForm().File("pdf", filename, content)
	var resp domain.UploadPDFResponse
	if err := c.api.SendMultipart(ctx, http.MethodPost, fmt.Sprintf("/permisos/%s/upload-pdf", id), form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegisterReturn фиксирует возврат сотрудника текущим локальным временем
// и перегенерирует PDF
func (c *PermitsClient) RegisterReturn(ctx context.Context, id string) (*Blob, error) {
	end := c.now().Format(ReturnTimeLayout)
	if _, err := c.Update(ctx, id, domain.UpdatePermitRequest{FechaHoraFin: &end}); err != nil {
		return nil, err
	}
	return c.GeneratePDF(ctx, id)
}

func setIfNotEmpty(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}
