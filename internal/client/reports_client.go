package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"RRHHPlatform/internal/domain"
)

// ReportsClient сервис отчетов: метрики посещаемости, выгрузки, сохраненные отчеты
type ReportsClient struct {
	api *API
}

// NewReportsClient создает клиент отчетов
func NewReportsClient(api *API) *ReportsClient {
	return &ReportsClient{api: api}
}

// AttendanceMetrics GET /asistencias/reporte на сервисе отчетов.
// Если блока totales нет, итоги читаются из корня ответа.
func (c *ReportsClient) AttendanceMetrics(ctx context.Context, r domain.DateRange) (*domain.AttendanceMetrics, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/asistencias/reporte", rangeQuery(r), nil)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return nil, ErrUnexpectedShape
	}

	var m domain.AttendanceMetrics
	if err := decodeJSON(raw, &m); err != nil {
		return nil, err
	}
	if !gjson.GetBytes(raw, "totales").IsObject() {
		if err := decodeJSON(raw, &m.Totales); err != nil {
			return nil, err
		}
	}
	if m.Data == nil {
		m.Data = make([]map[string]any, 0)
	}
	return &m, nil
}

// ExportPDF POST /reports/export/pdf
func (c *ReportsClient) ExportPDF(ctx context.Context, req domain.ReportExportRequest) (*Blob, error) {
	return c.api.SendBlob(ctx, http.MethodPost, "/reports/export/pdf", nil, req)
}

// ExportExcel POST /reports/export/excel
func (c *ReportsClient) ExportExcel(ctx context.Context, req domain.ReportExportRequest) (*Blob, error) {
	return c.api.SendBlob(ctx, http.MethodPost, "/reports/export/excel", nil, req)
}

// ListGenerated GET /reports/generated/
func (c *ReportsClient) ListGenerated(ctx context.Context) ([]domain.GeneratedReport, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/reports/generated/", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.GeneratedReport](raw, "data", "reports")
}

// DeleteGenerated DELETE /reports/generated/:id
func (c *ReportsClient) DeleteGenerated(ctx context.Context, id int) error {
	return c.api.Delete(ctx, fmt.Sprintf("/reports/generated/%d", id), nil)
}

// DownloadGenerated GET /reports/generated/:id?format=PDF|EXCEL
func (c *ReportsClient) DownloadGenerated(ctx context.Context, id int, format string) (*Blob, error) {
	if format == "" {
		format = domain.FormatPDF
	}
	query := url.Values{}
	query.Set("format", format)
	return c.api.SendBlob(ctx, http.MethodGet, fmt.Sprintf("/reports/generated/%d", id), query, nil)
}

// ListTypes GET /report-types
func (c *ReportsClient) ListTypes(ctx context.Context) ([]domain.ReportType, error) {
	raw, err := c.api.SendRaw(ctx, http.MethodGet, "/report-types", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.ReportType](raw, "data")
}

// CreateType POST /report-types
func (c *ReportsClient) CreateType(ctx context.Context, req domain.ReportTypeRequest) (*domain.ReportType, error) {
	return c.reportType(ctx, http.MethodPost, "/report-types", req)
}

// UpdateType PUT /report-types/:id
func (c *ReportsClient) UpdateType(ctx context.Context, id int, req domain.ReportTypeRequest) (*domain.ReportType, error) {
	return c.reportType(ctx, http.MethodPut, fmt.Sprintf("/report-types/%d", id), req)
}

// DeleteType DELETE /report-types/:id
func (c *ReportsClient) DeleteType(ctx context.Context, id int) error {
	return c.api.Delete(ctx, fmt.Sprintf("/report-types/%d", id), nil)
}

func (c *ReportsClient) reportType(ctx context.Context, method, path string, body any) (*domain.ReportType, error) {
	raw, err := c.api.SendRaw(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	var t domain.ReportType
	if err := decodeObject(raw, &t, "data"); err != nil {
		return nil, err
	}
	return &t, nil
}
