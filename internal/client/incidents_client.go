package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"RRHHPlatform/internal/domain"
)

// IncidentsClient инциденты: статусы, типы, заявки с документом
type IncidentsClient struct {
	api      *API
	statuses *StatusClient
}

// NewIncidentsClient создает клиент инцидентов
func NewIncidentsClient(api *API) *IncidentsClient {
	return &IncidentsClient{
		api:      api,
		statuses: NewStatusClient(api),
	}
}

// Statuses справочник статусов инцидентов
func (c *IncidentsClient) Statuses() *StatusClient {
	return c.statuses
}

// ListTypes GET /tipos-incidencia
func (c *IncidentsClient) ListTypes(ctx context.Context, activo *bool) ([]domain.IncidentType, error) {
	query := url.Values{}
	if activo != nil {
		query.Set("esta_activo", strconv.FormatBool(*activo))
	}
	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/tipos-incidencia", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.IncidentType](raw, "data")
}

// GetType GET /tipos-incidencia/:id
func (c *IncidentsClient) GetType(ctx context.Context, id string) (*domain.IncidentType, error) {
	return c.incidentType(ctx, http.MethodGet, fmt.Sprintf("/tipos-incidencia/%s", id), nil)
}

// CreateType POST /tipos-incidencia
func (c *IncidentsClient) CreateType(ctx context.Context, req domain.IncidentTypeRequest) (*domain.IncidentType, error) {
	return c.incidentType(ctx, http.MethodPost, "/tipos-incidencia", req)
}

// UpdateType PUT /tipos-incidencia/:id
func (c *IncidentsClient) UpdateType(ctx context.Context, id string, req domain.IncidentTypeRequest) (*domain.IncidentType, error) {
	return c.incidentType(ctx, http.MethodPut, fmt.Sprintf("/tipos-incidencia/%s", id), req)
}

// DeleteType DELETE /tipos-incidencia/:id
func (c *IncidentsClient) DeleteType(ctx context.Context, id string) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Delete(ctx, fmt.Sprintf("/tipos-incidencia/%s", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *IncidentsClient) incidentType(ctx context.Context, method, path string, body any) (*domain.IncidentType, error) {
	raw, err := c.api.SendRaw(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	var t domain.IncidentType
	if err := decodeObject(raw, &t, "data"); err != nil {
		return nil, err
	}
	return &t, nil
}

// List GET /incidencias
func (c *IncidentsClient) List(ctx context.Context, q domain.IncidentQuery) (*domain.PagedList[domain.Incident], error) {
	query := url.Values{}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	setIfNotEmpty(query, "empleado_id", q.EmpleadoID)
	setIfNotEmpty(query, "estado_id", q.EstadoID)
	setIfNotEmpty(query, "tipo_incidencia_id", q.TipoIncidenciaID)

	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/incidencias", query, nil)
	if err != nil {
		return nil, err
	}
	return decodePaged[domain.Incident](raw)
}

// Get GET /incidencias/:id
func (c *IncidentsClient) Get(ctx context.Context, id string) (*domain.Incident, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, fmt.Sprintf("/incidencias/%s", id), nil, nil)
	if err != nil {
		return nil, err
	}
	var inc domain.Incident
	if err := decodeObject(raw, &inc, "data"); err != nil {
		return nil, err
	}
	return &inc, nil
}

// Create создает инцидент с документом (POST /incidencias, multipart)
func (c *IncidentsClient) Create(ctx context.Context, req domain.CreateIncidentRequest) (*domain.Incident, error) {
	form := NewForm().
		Field("empleado_id", req.EmpleadoID).
		Field("tipo_incidencia_id", req.TipoIncidenciaID).
		Field("fecha_inicio", req.FechaInicio).
		Field("fecha_fin", req.FechaFin).
		Field("descripcion", req.Descripcion).
		Field("estado_id", req.EstadoID).
		File("documento", req.Documento.Filename, req.Documento.Content)

	return c.sendForm(ctx, http.MethodPost, "/incidencias", form)
}

// Update отправляет только заданные поля (PUT /incidencias/:id, multipart)
func (c *IncidentsClient) Update(ctx context.Context, id string, req domain.UpdateIncidentRequest) (*domain.Incident, error) {
	form := NewForm().
		OptionalField("empleado_id", req.EmpleadoID).
		OptionalField("tipo_incidencia_id", req.TipoIncidenciaID).
		OptionalField("fecha_inicio", req.FechaInicio).
		OptionalField("fecha_fin", req.FechaFin).
		OptionalField("descripcion", req.Descripcion).
		OptionalField("estado_id", req.EstadoID)
	if req.Documento != nil {
		form.File("documento", req.Documento.Filename, req.Documento.Content)
	}

	return c.sendForm(ctx, http.MethodPut, fmt.Sprintf("/incidencias/%s", id), form)
}

func (c *IncidentsClient) sendForm(ctx context.Context, method, path string, form *Form) (*domain.Incident, error) {
	var resp struct {
		Data domain.Incident `json:"data"`
	}
	if err := c.api.SendMultipart(ctx, method, path, form, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Delete DELETE /incidencias/:id
func (c *IncidentsClient) Delete(ctx context.Context, id string) (*domain.Message, error) {
	var resp domain.Message
	if err := c.api.Delete(ctx, fmt.Sprintf("/incidencias/%s", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Approve PATCH /incidencias/:id/aprobar
func (c *IncidentsClient) Approve(ctx context.Context, id string, req domain.ApproveIncidentRequest) (*domain.Incident, error) {
	return c.action(ctx, fmt.Sprintf("/incidencias/%s/aprobar", id), req)
}

// Reject PATCH /incidencias/:id/rechazar
func (c *IncidentsClient) Reject(ctx context.Context, id string, req domain.RejectIncidentRequest) (*domain.Incident, error) {
	return c.action(ctx, fmt.Sprintf("/incidencias/%s/rechazar", id), req)
}

func (c *IncidentsClient) action(ctx context.Context, path string, body any) (*domain.Incident, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodPatch, path, nil, body)
	if err != nil {
		return nil, err
	}
	var inc domain.Incident
	if err := decodeObject(raw, &inc, "data"); err != nil {
		return nil, err
	}
	return &inc, nil
}

// Document скачивает приложенный документ (GET /incidencias/:id/documento)
func (c *IncidentsClient) Document(ctx context.Context, id string) (*Blob, error) {
	return c.api.SendBlob(ctx, http.MethodGet, fmt.Sprintf("/incidencias/%s/documento", id), nil, nil)
}
