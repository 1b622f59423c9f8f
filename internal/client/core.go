// Package client содержит типизированные HTTP клиенты пяти бэкендов RRHH.
//
// Каждый бэкенд обслуживается своим *API: базовый адрес, таймаут 30 секунд,
// JSON по умолчанию, токен из хранилища в заголовке Authorization и сброс
// токена при ответе 401. Повторов нет: любая ошибка возвращается вызывающему.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/metrics"
	"RRHHPlatform/internal/store"
	pkgerrors "RRHHPlatform/pkg/errors"
	"RRHHPlatform/pkg/logger"
)

const (
	// DefaultTimeout таймаут одного запроса
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent значение заголовка User-Agent
	DefaultUserAgent = "RRHH-CLI/1.0"

	// RequestIDHeader заголовок идентификатора запроса
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 1 << 20
)

// Option настраивает *API при создании
type Option func(*API)

// WithTimeout задает таймаут запросов
func WithTimeout(timeout time.Duration) Option {
	return func(a *API) {
		if timeout > 0 {
			a.timeout = timeout
		}
	}
}

// WithLogger задает логгер
func WithLogger(log logger.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.logger = log
		}
	}
}

// WithMetrics подключает метрики и трассировку запросов
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(a *API) {
		a.metrics = m
	}
}

// WithTransport задает базовый http.RoundTripper (в тестах)
func WithTransport(rt http.RoundTripper) Option {
	return func(a *API) {
		if rt != nil {
			a.base = rt
		}
	}
}

// WithUserAgent задает заголовок User-Agent
func WithUserAgent(ua string) Option {
	return func(a *API) {
		if ua != "" {
			a.userAgent = ua
		}
	}
}

// WithUnauthorizedHook вызывается после удаления токена по ответу 401
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(a *API) {
		a.onUnauthorized = fn
	}
}

// API HTTP клиент одного бэкенда. Не меняется после создания.
type API struct {
	name      string
	baseURL   string
	timeout   time.Duration
	userAgent string
	storage   store.Storage
	base      http.RoundTripper
	logger    logger.Logger
	metrics   *metrics.ClientMetrics
	http      *http.Client

	onUnauthorized func(ctx context.Context)
}

// NewAPI создает клиент бэкенда name с базовым адресом baseURL.
// Токен читается из storage перед каждым запросом.
func NewAPI(name, baseURL string, storage store.Storage, opts ...Option) *API {
	a := &API{
		name:      name,
		baseURL:   strings.TrimRight(baseURL, "/"),
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		storage:   storage,
		base:      http.DefaultTransport,
		logger:    logger.NewNop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.logger = a.logger.With(logger.String("backend", name))

	var transport http.RoundTripper = &unauthorizedTransport{
		next:    a.base,
		storage: storage,
		logger:  a.logger,
		hook:    a.onUnauthorized,
	}
	transport = &authTransport{
		next:    transport,
		storage: storage,
		logger:  a.logger,
	}

	a.http = &http.Client{
		Timeout:   a.timeout,
		Transport: transport,
	}

	return a
}

// Name возвращает имя бэкенда
func (a *API) Name() string {
	return a.name
}

// BaseURL возвращает базовый адрес бэкенда
func (a *API) BaseURL() string {
	return a.baseURL
}

// Timeout возвращает таймаут запросов
func (a *API) Timeout() time.Duration {
	return a.timeout
}

// Get выполняет GET и декодирует JSON ответ в out
func (a *API) Get(ctx context.Context, path string, query url.Values, out any) error {
	return a.Send(ctx, http.MethodGet, path, query, nil, out)
}

// Post выполняет POST с JSON телом
func (a *API) Post(ctx context.Context, path string, body, out any) error {
	return a.Send(ctx, http.MethodPost, path, nil, body, out)
}

// Put выполняет PUT с JSON телом
func (a *API) Put(ctx context.Context, path string, body, out any) error {
	return a.Send(ctx, http.MethodPut, path, nil, body, out)
}

// Patch выполняет PATCH с JSON телом
func (a *API) Patch(ctx context.Context, path string, body, out any) error {
	return a.Send(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete выполняет DELETE
func (a *API) Delete(ctx context.Context, path string, out any) error {
	return a.Send(ctx, http.MethodDelete, path, nil, nil, out)
}

// Send выполняет запрос с JSON телом и декодирует ответ в out (если out != nil)
func (a *API) Send(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := a.SendRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	return decodeJSON(raw, out)
}

// SendRaw выполняет запрос с JSON телом и возвращает тело ответа как есть
func (a *API) SendRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrValidation, "ошибка кодирования запроса")
		}
		reader = bytes.NewReader(payload)
	}

	resp, err := a.do(ctx, method, path, query, reader, "application/json", "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrUnavailable, "ошибка чтения ответа")
	}
	return data, nil
}

// SendMultipart отправляет multipart/form-data и декодирует JSON ответ в out
func (a *API) SendMultipart(ctx context.Context, method, path string, form *Form, out any) error {
	payload, contentType, err := form.encode()
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrValidation, "ошибка формирования multipart")
	}

	resp, err := a.do(ctx, method, path, nil, bytes.NewReader(payload), contentType, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrUnavailable, "ошибка чтения ответа")
	}
	return decodeJSON(data, out)
}

// Blob двоичный ответ (PDF, Excel)
type Blob struct {
	ContentType string
	Filename    string
	Data        []byte
}

// SendBlob выполняет запрос и возвращает двоичное тело ответа
func (a *API) SendBlob(ctx context.Context, method, path string, query url.Values, body any) (*Blob, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrValidation, "ошибка кодирования запроса")
		}
		reader = bytes.NewReader(payload)
	}

	resp, err := a.do(ctx, method, path, query, reader, "application/json", "*/*")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrUnavailable, "ошибка чтения ответа")
	}

	return &Blob{
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    filenameFromDisposition(resp.Header.Get("Content-Disposition")),
		Data:        data,
	}, nil
}

// do выполняет запрос. Ответ вне 2xx закрывается и возвращается как ошибка.
func (a *API) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType, accept string) (*http.Response, error) {
	requestID := logger.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = logger.WithRequestID(ctx, requestID)
	}

	target := a.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrValidation, "ошибка создания запроса")
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set(RequestIDHeader, requestID)

	ctx, finish := a.metrics.Track(ctx, a.name, method, path)
	req = req.WithContext(ctx)

	a.logger.Debug("Sending request",
		logger.String("method", method),
		logger.String("path", path),
		logger.CtxField(ctx))

	start := time.Now()
	resp, err := a.http.Do(req)
	if err != nil {
		finish(0, err)
		a.logger.Warn("Request failed",
			logger.String("method", method),
			logger.String("path", path),
			logger.Duration("duration", time.Since(start)),
			logger.Error(err),
			logger.CtxField(ctx))
		return nil, transportError(err, a.name, method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		httpErr := &HTTPError{
			Service:    a.name,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       data,
		}
		finish(resp.StatusCode, httpErr)
		a.logger.Debug("Request rejected",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", resp.StatusCode),
			logger.CtxField(ctx))
		return nil, httpErr.wrap()
	}

	finish(resp.StatusCode, nil)
	a.logger.Debug("Request completed",
		logger.String("method", method),
		logger.String("path", path),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)),
		logger.CtxField(ctx))

	return resp, nil
}

// HTTPError ответ бэкенда со статусом вне 2xx. Тело сохраняется как есть.
type HTTPError struct {
	Service    string
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

// Error возвращает описание ошибки
func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s %s: %d %s", e.Service, e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// ErrorBody разбирает тело ошибки; ok == false, если тело не JSON
func (e *HTTPError) ErrorBody() (domain.ErrorBody, bool) {
	var body domain.ErrorBody
	if len(e.Body) == 0 || json.Unmarshal(e.Body, &body) != nil {
		return body, false
	}
	return body, true
}

func (e *HTTPError) wrap() error {
	message := http.StatusText(e.StatusCode)
	if body, ok := e.ErrorBody(); ok {
		if summary := body.Summary(); summary != "" {
			message = summary
		}
	}
	return pkgerrors.Wrap(e, pkgerrors.FromHTTPStatus(e.StatusCode), message)
}

// StatusCode возвращает HTTP статус ошибки бэкенда или 0
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// DecodeErrorBody извлекает тело ошибки бэкенда из цепочки err
func DecodeErrorBody(err error) (domain.ErrorBody, bool) {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return domain.ErrorBody{}, false
	}
	return httpErr.ErrorBody()
}

func transportError(err error, service, method, path string) error {
	message := fmt.Sprintf("%s %s %s", service, method, path)

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return pkgerrors.Wrap(err, pkgerrors.ErrTimeout, message)
	}
	if errors.Is(err, context.Canceled) {
		return pkgerrors.Wrap(err, pkgerrors.ErrInternal, message)
	}
	return pkgerrors.Wrap(err, pkgerrors.ErrUnavailable, message)
}

func decodeJSON(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrInternal, "ошибка декодирования ответа")
	}
	return nil
}

func filenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}

// authTransport добавляет Authorization: Bearer <token>, если токен сохранен
type authTransport struct {
	next    http.RoundTripper
	storage store.Storage
	logger  logger.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.storage == nil {
		return t.next.RoundTrip(req)
	}

	token, err := t.storage.Get(req.Context(), store.KeyToken)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			t.logger.Debug("Token read failed, sending unauthenticated", logger.Error(err))
		}
		return t.next.RoundTrip(req)
	}
	if token == "" {
		return t.next.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+token)
	return t.next.RoundTrip(req)
}

// unauthorizedTransport удаляет сохраненный токен при ответе 401
type unauthorizedTransport struct {
	next    http.RoundTripper
	storage store.Storage
	logger  logger.Logger
	hook    func(ctx context.Context)
}

func (t *unauthorizedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || t.storage == nil {
		return resp, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if rmErr := t.storage.Remove(req.Context(), store.KeyToken); rmErr != nil {
			t.logger.Warn("Failed to remove token after 401", logger.Error(rmErr))
		} else {
			t.logger.Info("Token removed after 401", logger.String("path", req.URL.Path))
		}
		if t.hook != nil {
			t.hook(req.Context())
		}
	}

	return resp, nil
}
