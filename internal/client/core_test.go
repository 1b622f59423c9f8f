package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RRHHPlatform/internal/metrics"
	"RRHHPlatform/internal/store"
	pkgerrors "RRHHPlatform/pkg/errors"
	"RRHHPlatform/pkg/logger"
	pkgmetrics "RRHHPlatform/pkg/metrics"
)

// recorder запоминает заголовки и пути полученных запросов
type recorder struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   [][]byte
}

func (r *recorder) record(req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewReader(body))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req.Clone(context.Background()))
	r.bodies = append(r.bodies, body)
}

func (r *recorder) last() *http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[len(r.requests)-1]
}

func (r *recorder) lastBody() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bodies[len(r.bodies)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

func newTestAPI(t *testing.T, handler http.HandlerFunc, storage store.Storage, opts ...Option) (*API, *recorder) {
	t.Helper()

	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return NewAPI("test", srv.URL+"/api", storage, opts...), rec
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestAPI_BearerHeader(t *testing.T) {
	ctx := context.Background()
	storage := store.NewMemoryStorage()
	api, rec := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}, storage)

	// Без токена заголовка нет
	require.NoError(t, api.Get(ctx, "/ping", nil, nil))
	assert.Empty(t, rec.last().Header.Get("Authorization"))

	// С токеном заголовок добавляется
	require.NoError(t, storage.Set(ctx, store.KeyToken, "abc.def.ghi"))
	require.NoError(t, api.Get(ctx, "/ping", nil, nil))
	assert.Equal(t, "Bearer abc.def.ghi", rec.last().Header.Get("Authorization"))

	// Пустой токен равносилен отсутствию
	require.NoError(t, storage.Set(ctx, store.KeyToken, ""))
	require.NoError(t, api.Get(ctx, "/ping", nil, nil))
	assert.Empty(t, rec.last().Header.Get("Authorization"))
}

func TestAPI_DefaultHeaders(t *testing.T) {
	api, rec := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	}, store.NewMemoryStorage())

	require.NoError(t, api.Post(context.Background(), "/items", map[string]string{"a": "b"}, nil))

	req := rec.last()
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, DefaultUserAgent, req.Header.Get("User-Agent"))
	assert.NotEmpty(t, req.Header.Get(RequestIDHeader))
	assert.JSONEq(t, `{"a":"b"}`, string(rec.lastBody()))
}

func TestAPI_RequestIDFromContext(t *testing.T) {
	api, rec := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	}, store.NewMemoryStorage())

	ctx := logger.WithRequestID(context.Background(), "req-42")
	require.NoError(t, api.Get(ctx, "/ping", nil, nil))
	assert.Equal(t, "req-42", rec.last().Header.Get(RequestIDHeader))
}

func TestAPI_UnauthorizedRemovesToken(t *testing.T) {
	ctx := context.Background()
	storage := store.NewMemoryStorage()
	require.NoError(t, storage.Set(ctx, store.KeyToken, "expired"))
	require.NoError(t, storage.Set(ctx, store.KeyUser, `{"dni":"1"}`))

	api, rec := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Token expirado"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{})
	}, storage)

	err := api.Get(ctx, "/auth/profile", nil, nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.ErrUnauthorized))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	assert.Contains(t, err.Error(), "Token expirado")

	_, err = storage.Get(ctx, store.KeyToken)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Профиль не трогается: его очищает только выход из сессии
	user, err := storage.Get(ctx, store.KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"dni":"1"}`, user)

	// Следующий запрос уходит без заголовка
	require.NoError(t, api.Get(ctx, "/auth/profile", nil, nil))
	assert.Empty(t, rec.last().Header.Get("Authorization"))
	assert.Equal(t, 2, rec.count())
}

func TestAPI_UnauthorizedHook(t *testing.T) {
	ctx := context.Background()
	storage := store.NewMemoryStorage()
	require.NoError(t, storage.Set(ctx, store.KeyToken, "expired"))

	var calls int
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/ok" {
			writeJSON(w, http.StatusOK, map[string]any{})
			return
		}
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Token expirado"})
	}, storage, WithUnauthorizedHook(func(context.Context) { calls++ }))

	require.NoError(t, api.Get(ctx, "/ok", nil, nil))
	assert.Equal(t, 0, calls)

	require.Error(t, api.Get(ctx, "/auth/profile", nil, nil))
	assert.Equal(t, 1, calls)
}

func TestAPI_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		code    pkgerrors.ErrorCode
		message string
	}{
		{"bad request with message", http.StatusBadRequest, map[string]any{"message": "DNI inválido"}, pkgerrors.ErrValidation, "DNI inválido"},
		{"unprocessable with errors", http.StatusUnprocessableEntity, map[string]any{"errors": []map[string]string{{"field": "motivo", "msg": "requerido"}}}, pkgerrors.ErrValidation, "requerido"},
		{"forbidden with error", http.StatusForbidden, map[string]any{"error": "Sin permisos"}, pkgerrors.ErrForbidden, "Sin permisos"},
		{"not found with detail", http.StatusNotFound, map[string]any{"detail": "No existe"}, pkgerrors.ErrNotFound, "No existe"},
		{"conflict", http.StatusConflict, map[string]any{"message": "Duplicado"}, pkgerrors.ErrConflict, "Duplicado"},
		{"server error without body", http.StatusInternalServerError, nil, pkgerrors.ErrInternal, "Internal Server Error"},
		{"bad gateway", http.StatusBadGateway, nil, pkgerrors.ErrUnavailable, "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			}, store.NewMemoryStorage())

			err := api.Get(context.Background(), "/x", nil, nil)
			require.Error(t, err)
			assert.Equal(t, tt.code, pkgerrors.CodeOf(err))
			assert.Equal(t, tt.status, StatusCode(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestDecodeErrorBody(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Validación fallida",
			"details": []map[string]string{{"field": "fecha_inicio", "message": "formato inválido"}},
		})
	}, store.NewMemoryStorage())

	err := api.Post(context.Background(), "/permisos", map[string]string{}, nil)
	require.Error(t, err)

	body, ok := DecodeErrorBody(err)
	require.True(t, ok)
	assert.Equal(t, "Validación fallida", body.Message)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "fecha_inicio", body.Details[0].Field)

	_, ok = DecodeErrorBody(pkgerrors.New(pkgerrors.ErrInternal, "otro"))
	assert.False(t, ok)
}

func TestAPI_TransportErrors(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}, store.NewMemoryStorage(), WithTimeout(50*time.Millisecond))

		err := api.Get(context.Background(), "/slow", nil, nil)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.ErrTimeout, pkgerrors.CodeOf(err))
		assert.Zero(t, StatusCode(err))
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		api := NewAPI("test", url, store.NewMemoryStorage())
		err := api.Get(context.Background(), "/x", nil, nil)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.ErrUnavailable, pkgerrors.CodeOf(err))
	})

	t.Run("canceled", func(t *testing.T) {
		api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{})
		}, store.NewMemoryStorage())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := api.Get(ctx, "/x", nil, nil)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.ErrInternal, pkgerrors.CodeOf(err))
	})
}

func TestAPI_TrailingSlashPreserved(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		writeJSON(w, http.StatusOK, []any{})
	}))
	defer srv.Close()

	api := NewAPI(ServiceBiometric, srv.URL+"/api/", store.NewMemoryStorage())
	departments := NewDepartmentsClient(api)

	list, err := departments.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, "/api/departamentos/", rec.last().URL.Path)
}

func TestAPI_Metrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewClientMetrics(pkgmetrics.NewMetrics("rrhh_test", registry), logger.NewNop())

	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{})
	}, store.NewMemoryStorage(), WithMetrics(m))

	ctx := context.Background()
	require.NoError(t, api.Get(ctx, "/ok", nil, nil))
	require.Error(t, api.Get(ctx, "/missing", nil, nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestCount.WithLabelValues("test", http.MethodGet, "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestCount.WithLabelValues("test", http.MethodGet, "404")))
}

func TestAPI_Blob(t *testing.T) {
	api, rec := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="papeleta-7.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	}, store.NewMemoryStorage())

	blob, err := api.SendBlob(context.Background(), http.MethodGet, "/permisos/7/pdf", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", blob.ContentType)
	assert.Equal(t, "papeleta-7.pdf", blob.Filename)
	assert.Equal(t, []byte("%PDF-1.4"), blob.Data)
	assert.Equal(t, "*/*", rec.last().Header.Get("Accept"))
}
